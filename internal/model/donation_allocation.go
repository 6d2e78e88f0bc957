package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationAllocation 捐赠分配记录：一笔捐赠拨给某个项目的金额。
// (donation, project) 组合唯一，同一捐赠对同一项目只有一行，追加拨款时更新该行。
// 属于硬性账本记录，不做软删除。
type DonationAllocation struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonationId    int64           `json:"donation_id" gorm:"not null;uniqueIndex:idx_donation_project" binding:"required"`
	ProjectId     int64           `json:"project_id" gorm:"not null;uniqueIndex:idx_donation_project" binding:"required"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	AllocatedDate time.Time       `json:"allocated_date" gorm:"not null"`
	Notes         string          `json:"notes" gorm:"type:text"`

	// 关联
	Donation *Donation `json:"donation,omitempty" gorm:"foreignKey:DonationId"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (DonationAllocation) TableName() string {
	return "donation_allocation"
}
