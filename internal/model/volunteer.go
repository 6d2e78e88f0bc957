package model

import (
	"time"
)

// Volunteer 志愿者报名记录
type Volunteer struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `json:"name" gorm:"not null" binding:"required"`
	Email        string `json:"email" gorm:"not null" binding:"required,email"`
	Phone        string `json:"phone" gorm:"not null" binding:"required"`
	Address      string `json:"address" gorm:"type:text"`
	CommunityId  int64  `json:"community_id" gorm:"not null" binding:"required"`
	Skills       string `json:"skills" gorm:"type:text"`
	Availability string `json:"availability"`
	Message      string `json:"message" gorm:"type:text"`
	IsApproved   bool   `json:"is_approved" gorm:"default:false"`

	// 关联
	Community *Community `json:"community,omitempty" gorm:"foreignKey:CommunityId"`
}

// TableName 自定义表名
func (Volunteer) TableName() string {
	return "volunteer"
}
