package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationLogic 捐赠分配业务逻辑
type AllocationLogic struct {
	db *gorm.DB
}

// NewAllocationLogic 创建捐赠分配业务逻辑
func NewAllocationLogic(db *gorm.DB) *AllocationLogic {
	return &AllocationLogic{db: db}
}

// validateAllocationAmount 校验分配金额。纯函数，不依赖存储：
// siblingTotal 为该捐赠下其他分配（不含本次要覆盖的那一行）的合计。
func validateAllocationAmount(donationAmount, siblingTotal, amount decimal.Decimal, currency model.Currency) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return newValidationError("amount", "分配金额必须大于0")
	}
	if siblingTotal.Add(amount).GreaterThan(donationAmount) {
		return newRemainingError(donationAmount.Sub(siblingTotal), currency)
	}
	return nil
}

// Allocate 把一笔捐赠的部分余额拨给某个项目。
// 同一 (donation, project) 组合只保留一行：已存在时覆盖其金额，不插入重复行。
// 校验和写入在同一事务内完成，捐赠行加锁，避免并发分配击穿余额。
func (a *AllocationLogic) Allocate(donationId, projectId int64, amount decimal.Decimal, notes string) (*model.DonationAllocation, error) {
	var allocation *model.DonationAllocation

	err := a.db.Transaction(func(tx *gorm.DB) error {
		var donation model.Donation
		if err := lockForUpdate(tx).First(&donation, donationId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("捐赠 %d: %w", donationId, ErrNotFound)
			}
			return err
		}

		var project model.Project
		if err := tx.First(&project, projectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("项目 %d: %w", projectId, ErrNotFound)
			}
			return err
		}

		// 取出已存在的同组合行，覆盖而不是新增
		var existing model.DonationAllocation
		found := true
		if err := tx.Where("donation_id = ? AND project_id = ?", donationId, projectId).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
		}

		// 兄弟分配合计，排除将被覆盖的那一行
		siblingTotal, err := a.siblingTotal(tx, donationId, projectId)
		if err != nil {
			return err
		}

		if err := validateAllocationAmount(donation.Amount, siblingTotal, amount, donation.Currency); err != nil {
			return err
		}

		if found {
			existing.Amount = amount
			if notes != "" {
				existing.Notes = notes
			}
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			allocation = &existing
			return nil
		}

		allocation = &model.DonationAllocation{
			DonationId:    donationId,
			ProjectId:     projectId,
			Amount:        amount,
			AllocatedDate: time.Now(),
			Notes:         notes,
		}
		return tx.Create(allocation).Error
	})
	if err != nil {
		return nil, err
	}

	return allocation, nil
}

// siblingTotal 统计该捐赠下其他项目的分配合计
func (a *AllocationLogic) siblingTotal(tx *gorm.DB, donationId, projectId int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Model(&model.DonationAllocation{}).
		Where("donation_id = ? AND project_id <> ?", donationId, projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// DeleteAllocation 删除分配记录，其金额自动回到捐赠的未分配余额
func (a *AllocationLogic) DeleteAllocation(id int64) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		var allocation model.DonationAllocation
		if err := tx.First(&allocation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("分配记录 %d: %w", id, ErrNotFound)
			}
			return err
		}
		return tx.Delete(&allocation).Error
	})
}

// GetAllocation 获取分配详情
func (a *AllocationLogic) GetAllocation(id int64) (*model.DonationAllocation, error) {
	var allocation model.DonationAllocation
	if err := a.db.Preload("Donation.Donor").Preload("Project").
		First(&allocation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("分配记录 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &allocation, nil
}

// GetAllocations 按操作者权限获取分配列表
func (a *AllocationLogic) GetAllocations(actor model.Actor, page, pageSize int) ([]model.DonationAllocation, int64, error) {
	var allocations []model.DonationAllocation
	var total int64

	if err := ScopedDB(a.db.Model(&model.DonationAllocation{}), actor, ScopeAllocation).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := ScopedDB(a.db.Model(&model.DonationAllocation{}), actor, ScopeAllocation).
		Preload("Donation.Donor").Preload("Project").
		Offset(offset).
		Limit(pageSize).
		Order("allocated_date DESC").
		Find(&allocations).Error; err != nil {
		return nil, 0, err
	}

	return allocations, total, nil
}

// GetDonationAllocations 获取某笔捐赠的全部分配
func (a *AllocationLogic) GetDonationAllocations(donationId int64) ([]model.DonationAllocation, error) {
	var allocations []model.DonationAllocation
	if err := a.db.Where("donation_id = ?", donationId).
		Preload("Project").
		Order("allocated_date DESC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}
