package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation 单笔捐赠记录，金额创建后不可随意变更
type Donation struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorId       int64           `json:"donor_id" gorm:"not null;index" binding:"required"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency      Currency        `json:"currency" gorm:"size:3;default:'USD'"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"size:10;default:'BANK'"`
	ReferenceNo   string          `json:"reference_no"`
	DateReceived  time.Time       `json:"date_received" gorm:"not null"`
	ReceiptIssued bool            `json:"receipt_issued" gorm:"default:false"`
	Notes         string          `json:"notes" gorm:"type:text"`

	// 关联
	Donor       *Donor               `json:"donor,omitempty" gorm:"foreignKey:DonorId"`
	Allocations []DonationAllocation `json:"allocations,omitempty" gorm:"foreignKey:DonationId"`
}

// TableName 自定义表名
func (Donation) TableName() string {
	return "donation"
}

// AllocatedAmount 已分配到项目的总金额
func (d *Donation) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// RemainingAmount 尚未分配的金额
func (d *Donation) RemainingAmount() decimal.Decimal {
	return d.Amount.Sub(d.AllocatedAmount())
}

// IsFullyAllocated 是否已全部分配
func (d *Donation) IsFullyAllocated() bool {
	return d.RemainingAmount().LessThanOrEqual(decimal.Zero)
}

// Currency 币种
type Currency string

const (
	CurrencyUSD Currency = "USD" // 美元
	CurrencyPKR Currency = "PKR" // 巴基斯坦卢比
	CurrencyEUR Currency = "EUR" // 欧元
	CurrencyGBP Currency = "GBP" // 英镑
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodBank   PaymentMethod = "BANK"   // 银行转账
	PaymentMethodCash   PaymentMethod = "CASH"   // 现金
	PaymentMethodCard   PaymentMethod = "CARD"   // 信用卡/借记卡
	PaymentMethodMobile PaymentMethod = "MOBILE" // 移动支付
	PaymentMethodCheque PaymentMethod = "CHEQUE" // 支票
	PaymentMethodOther  PaymentMethod = "OTHER"  // 其他
)
