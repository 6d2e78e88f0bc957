package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationLogic 捐赠业务逻辑
type DonationLogic struct {
	db *gorm.DB
}

// NewDonationLogic 创建捐赠业务逻辑
func NewDonationLogic(db *gorm.DB) *DonationLogic {
	return &DonationLogic{db: db}
}

// CreateDonation 创建捐赠记录
func (d *DonationLogic) CreateDonation(donation *model.Donation) error {
	if donation.DonorId == 0 {
		return newValidationError("donor_id", "捐赠必须关联捐赠人")
	}
	if donation.Amount.LessThanOrEqual(decimal.Zero) {
		return newValidationError("amount", "捐赠金额必须大于0")
	}

	var donor model.Donor
	if err := d.db.First(&donor, donation.DonorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("捐赠人 %d: %w", donation.DonorId, ErrNotFound)
		}
		return err
	}

	if donation.Currency == "" {
		donation.Currency = model.CurrencyUSD
	}
	if donation.PaymentMethod == "" {
		donation.PaymentMethod = model.PaymentMethodBank
	}
	if donation.DateReceived.IsZero() {
		donation.DateReceived = time.Now()
	}

	return d.db.Create(donation).Error
}

// GetDonations 按操作者权限获取捐赠列表
func (d *DonationLogic) GetDonations(actor model.Actor, page, pageSize int) ([]model.Donation, int64, error) {
	var donations []model.Donation
	var total int64

	if err := ScopedDB(d.db.Model(&model.Donation{}), actor, ScopeDonation).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := ScopedDB(d.db.Model(&model.Donation{}), actor, ScopeDonation).
		Preload("Donor").
		Offset(offset).
		Limit(pageSize).
		Order("date_received DESC, created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// GetDonation 获取捐赠详情（含分配去向）
func (d *DonationLogic) GetDonation(id int64) (*model.Donation, error) {
	var donation model.Donation
	if err := d.db.Preload("Donor").
		Preload("Allocations.Project").
		First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("捐赠 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &donation, nil
}

// UpdateDonation 更新捐赠记录。金额一旦低于已分配合计即拒绝，
// 不做级联收缩，避免悄悄改写已开收据的账目。
func (d *DonationLogic) UpdateDonation(id int64, updates map[string]interface{}) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var donation model.Donation
		if err := lockForUpdate(tx).First(&donation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("捐赠 %d: %w", id, ErrNotFound)
			}
			return err
		}

		if raw, ok := updates["amount"]; ok {
			amount, ok := raw.(decimal.Decimal)
			if !ok {
				return newValidationError("amount", "捐赠金额格式不正确")
			}
			if amount.LessThanOrEqual(decimal.Zero) {
				return newValidationError("amount", "捐赠金额必须大于0")
			}

			var allocated decimal.Decimal
			if err := tx.Model(&model.DonationAllocation{}).
				Where("donation_id = ?", id).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&allocated).Error; err != nil {
				return err
			}
			if amount.LessThan(allocated) {
				return &ValidationError{
					Field:     "amount",
					Message:   fmt.Sprintf("捐赠金额不能低于已分配合计 %s %s", allocated.StringFixed(2), donation.Currency),
					Remaining: &allocated,
					Currency:  donation.Currency,
				}
			}
		}

		return tx.Model(&donation).Updates(updates).Error
	})
}

// DeleteDonation 删除捐赠记录。存在分配时禁止删除。
func (d *DonationLogic) DeleteDonation(id int64) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var donation model.Donation
		if err := tx.First(&donation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("捐赠 %d: %w", id, ErrNotFound)
			}
			return err
		}

		var allocationCount int64
		if err := tx.Model(&model.DonationAllocation{}).
			Where("donation_id = ?", id).
			Count(&allocationCount).Error; err != nil {
			return err
		}
		if allocationCount > 0 {
			return fmt.Errorf("捐赠 %d 已有 %d 条分配记录: %w", id, allocationCount, ErrProtected)
		}

		return tx.Delete(&donation).Error
	})
}

// GetDonationStats 捐赠统计：总额、笔数、未分配余额
func (d *DonationLogic) GetDonationStats(actor model.Actor) (map[string]interface{}, error) {
	var totalAmount decimal.Decimal
	if err := ScopedDB(d.db.Model(&model.Donation{}), actor, ScopeDonation).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount).Error; err != nil {
		return nil, fmt.Errorf("统计捐赠总额失败: %w", err)
	}

	var totalCount int64
	if err := ScopedDB(d.db.Model(&model.Donation{}), actor, ScopeDonation).
		Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("统计捐赠笔数失败: %w", err)
	}

	var totalAllocated decimal.Decimal
	if err := ScopedDB(d.db.Model(&model.DonationAllocation{}), actor, ScopeAllocation).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAllocated).Error; err != nil {
		return nil, fmt.Errorf("统计已分配总额失败: %w", err)
	}

	return map[string]interface{}{
		"total_amount":    totalAmount,
		"total_count":     totalCount,
		"total_allocated": totalAllocated,
		"unallocated":     totalAmount.Sub(totalAllocated),
	}, nil
}
