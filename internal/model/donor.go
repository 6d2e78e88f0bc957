package model

import (
	"time"
)

// DonorIdLength 捐赠人编号长度（9位数字）
const DonorIdLength = 9

// Donor 捐赠人，支持匿名查询
type Donor struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 对外公开的9位数字编号，创建后不可变更
	DonorId string `json:"donor_id" gorm:"size:9;uniqueIndex;not null"`

	Name        string `json:"name" gorm:"not null" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address" gorm:"type:text"`
	CommunityId int64  `json:"community_id" gorm:"not null" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous" gorm:"default:false"`
	Notes       string `json:"notes" gorm:"type:text"`

	// 关联
	Community *Community `json:"community,omitempty" gorm:"foreignKey:CommunityId"`
	Donations []Donation `json:"donations,omitempty" gorm:"foreignKey:DonorId"`
}

// TableName 自定义表名
func (Donor) TableName() string {
	return "donor"
}

// DisplayName 对外展示名称，匿名捐赠人不显示真实姓名
func (d *Donor) DisplayName() string {
	if d.IsAnonymous {
		return "Anonymous Donor"
	}
	return d.Name
}
