package model

import (
	"time"
)

// ProjectUpdate 项目进展更新
type ProjectUpdate struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index" binding:"required"`
	Title     string `json:"title" gorm:"not null" binding:"required"`
	Content   string `json:"content" gorm:"type:text"`

	// 关联
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (ProjectUpdate) TableName() string {
	return "project_update"
}
