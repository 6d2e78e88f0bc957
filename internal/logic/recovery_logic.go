package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecoveryLogic 回收记录业务逻辑
type RecoveryLogic struct {
	db *gorm.DB
}

// NewRecoveryLogic 创建回收记录业务逻辑
func NewRecoveryLogic(db *gorm.DB) *RecoveryLogic {
	return &RecoveryLogic{db: db}
}

// RecordRecovery 记录一笔项目回款。插入和项目 TotalRecovered 缓存的刷新
// 在同一事务内完成，项目行加锁，缓存不允许与明细漂移。
func (r *RecoveryLogic) RecordRecovery(recovery *model.Recovery) error {
	if recovery.ProjectId == 0 {
		return newValidationError("project_id", "回收必须关联项目")
	}
	if recovery.Amount.LessThanOrEqual(decimal.Zero) {
		return newValidationError("amount", "回收金额必须大于0")
	}
	if recovery.PaymentMethod == "" {
		recovery.PaymentMethod = model.PaymentMethodCash
	}
	if recovery.RecoveryDate.IsZero() {
		recovery.RecoveryDate = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).First(&project, recovery.ProjectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("项目 %d: %w", recovery.ProjectId, ErrNotFound)
			}
			return err
		}

		if err := tx.Create(recovery).Error; err != nil {
			return err
		}

		return refreshTotalRecovered(tx, recovery.ProjectId)
	})
}

// UpdateRecovery 更新回收记录并刷新项目缓存
func (r *RecoveryLogic) UpdateRecovery(id int64, updates map[string]interface{}) error {
	if raw, ok := updates["amount"]; ok {
		amount, ok := raw.(decimal.Decimal)
		if !ok || amount.LessThanOrEqual(decimal.Zero) {
			return newValidationError("amount", "回收金额必须大于0")
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var recovery model.Recovery
		if err := tx.First(&recovery, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("回收记录 %d: %w", id, ErrNotFound)
			}
			return err
		}

		if err := lockForUpdate(tx).First(&model.Project{}, recovery.ProjectId).Error; err != nil {
			return err
		}

		if err := tx.Model(&recovery).Updates(updates).Error; err != nil {
			return err
		}

		return refreshTotalRecovered(tx, recovery.ProjectId)
	})
}

// DeleteRecovery 删除回收记录并刷新项目缓存
func (r *RecoveryLogic) DeleteRecovery(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var recovery model.Recovery
		if err := tx.First(&recovery, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("回收记录 %d: %w", id, ErrNotFound)
			}
			return err
		}

		if err := lockForUpdate(tx).First(&model.Project{}, recovery.ProjectId).Error; err != nil {
			return err
		}

		if err := tx.Delete(&recovery).Error; err != nil {
			return err
		}

		return refreshTotalRecovered(tx, recovery.ProjectId)
	})
}

// refreshTotalRecovered 以回收明细为准重算并持久化项目的 TotalRecovered 缓存
func refreshTotalRecovered(tx *gorm.DB, projectId int64) error {
	var total decimal.Decimal
	if err := tx.Model(&model.Recovery{}).
		Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	return tx.Model(&model.Project{}).
		Where("id = ?", projectId).
		Update("total_recovered", total).Error
}

// GetRecoveries 按操作者权限获取回收列表
func (r *RecoveryLogic) GetRecoveries(actor model.Actor, page, pageSize int) ([]model.Recovery, int64, error) {
	var recoveries []model.Recovery
	var total int64

	if err := ScopedDB(r.db.Model(&model.Recovery{}), actor, ScopeRecovery).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := ScopedDB(r.db.Model(&model.Recovery{}), actor, ScopeRecovery).
		Preload("Project").
		Offset(offset).
		Limit(pageSize).
		Order("recovery_date DESC").
		Find(&recoveries).Error; err != nil {
		return nil, 0, err
	}

	return recoveries, total, nil
}

// GetProjectRecoveries 获取某项目的回收明细
func (r *RecoveryLogic) GetProjectRecoveries(projectId int64, page, pageSize int) ([]model.Recovery, int64, error) {
	var recoveries []model.Recovery
	var total int64

	if err := r.db.Model(&model.Recovery{}).Where("project_id = ?", projectId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("recovery_date DESC").
		Find(&recoveries).Error; err != nil {
		return nil, 0, err
	}

	return recoveries, total, nil
}
