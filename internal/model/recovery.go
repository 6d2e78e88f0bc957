package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recovery 已建立项目的月度回收记录。硬性账本记录，不做软删除。
// 每次创建/更新/删除都会在同一事务内刷新所属项目的 TotalRecovered 缓存。
type Recovery struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId     int64           `json:"project_id" gorm:"not null;index" binding:"required"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	RecoveryDate  time.Time       `json:"recovery_date" gorm:"not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"size:10;default:'CASH'"`
	ReferenceNo   string          `json:"reference_no"`
	Notes         string          `json:"notes" gorm:"type:text"`

	// 关联
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (Recovery) TableName() string {
	return "recovery"
}
