package model

import (
	"time"
)

// Community 捐赠人/受助人社区（国际、巴基斯坦）
type Community struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string        `json:"name" gorm:"not null" binding:"required"`
	CommunityType CommunityType `json:"community_type" gorm:"size:4;uniqueIndex;not null" binding:"required"`
	Description   string        `json:"description" gorm:"type:text"`
	IsActive      bool          `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (Community) TableName() string {
	return "community"
}

// CommunityType 社区类型
type CommunityType string

const (
	CommunityTypeInternational CommunityType = "INTL" // 国际社区
	CommunityTypePakistani     CommunityType = "PAK"  // 巴基斯坦社区
)
