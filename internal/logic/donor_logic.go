package logic

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Awaismaz/bait-ul-rizq/internal/logger"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"gorm.io/gorm"
)

// maxDonorIdAttempts 编号生成重试上限，超过即报错告警，绝不接受重复编号
const maxDonorIdAttempts = 100

// DonorLogic 捐赠人业务逻辑
type DonorLogic struct {
	db *gorm.DB
}

// NewDonorLogic 创建捐赠人业务逻辑
func NewDonorLogic(db *gorm.DB) *DonorLogic {
	return &DonorLogic{db: db}
}

// generateDonorId 生成9位数字的唯一捐赠人编号。
// 每位数字独立均匀随机；发生碰撞时整体重新生成，不做增量修补。
func (d *DonorLogic) generateDonorId(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxDonorIdAttempts; attempt++ {
		buf := make([]byte, model.DonorIdLength)
		for i := range buf {
			buf[i] = byte('0' + rand.Intn(10))
		}
		candidate := string(buf)

		var count int64
		if err := tx.Model(&model.Donor{}).Where("donor_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}

	logger.Error("Donor ID generation exhausted %d attempts, ID space may be saturated", maxDonorIdAttempts)
	return "", fmt.Errorf("捐赠人编号生成失败：连续 %d 次碰撞", maxDonorIdAttempts)
}

// isWellFormedDonorId 判断编号格式是否合法（9位ASCII数字）
func isWellFormedDonorId(donorId string) bool {
	if len(donorId) != model.DonorIdLength {
		return false
	}
	for i := 0; i < len(donorId); i++ {
		if donorId[i] < '0' || donorId[i] > '9' {
			return false
		}
	}
	return true
}

// CreateDonor 创建捐赠人并分配唯一编号
func (d *DonorLogic) CreateDonor(donor *model.Donor) error {
	if donor.Name == "" {
		return newValidationError("name", "捐赠人姓名不能为空")
	}
	if donor.CommunityId == 0 {
		return newValidationError("community_id", "捐赠人必须归属一个社区")
	}

	var community model.Community
	if err := d.db.First(&community, donor.CommunityId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("社区 %d: %w", donor.CommunityId, ErrNotFound)
		}
		return err
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		donorId, err := d.generateDonorId(tx)
		if err != nil {
			return err
		}
		donor.DonorId = donorId
		return tx.Create(donor).Error
	})
}

// GetDonors 按操作者权限获取捐赠人列表
func (d *DonorLogic) GetDonors(actor model.Actor, page, pageSize int) ([]model.Donor, int64, error) {
	var donors []model.Donor
	var total int64

	if err := ScopedDB(d.db.Model(&model.Donor{}), actor, ScopeDonor).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := ScopedDB(d.db.Model(&model.Donor{}), actor, ScopeDonor).
		Preload("Community").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&donors).Error; err != nil {
		return nil, 0, err
	}

	return donors, total, nil
}

// GetDonor 获取捐赠人详情
func (d *DonorLogic) GetDonor(id int64) (*model.Donor, error) {
	var donor model.Donor
	if err := d.db.Preload("Community").Preload("Donations").
		First(&donor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("捐赠人 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &donor, nil
}

// UpdateDonor 更新捐赠人信息。公开编号创建后不可变更，不在可更新字段内。
func (d *DonorLogic) UpdateDonor(id int64, updates map[string]interface{}) error {
	result := d.db.Model(&model.Donor{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("捐赠人 %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteDonor 删除捐赠人。存在捐赠记录时禁止删除，保证引用完整性。
func (d *DonorLogic) DeleteDonor(id int64) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var donor model.Donor
		if err := tx.First(&donor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("捐赠人 %d: %w", id, ErrNotFound)
			}
			return err
		}

		var donationCount int64
		if err := tx.Model(&model.Donation{}).Where("donor_id = ?", id).
			Count(&donationCount).Error; err != nil {
			return err
		}
		if donationCount > 0 {
			return fmt.Errorf("捐赠人 %d 名下仍有 %d 笔捐赠: %w", id, donationCount, ErrProtected)
		}

		return tx.Delete(&donor).Error
	})
}

// LookupByDonorId 公开的捐赠人自助查询：按编号精确匹配，返回捐赠人及其全部
// 捐赠和分配去向（"我的钱去哪了"视图）。
// 格式不合法返回 ErrInvalidDonorId；格式合法但无匹配返回 ErrNotFound，
// 调用方应把后者当作正常的空结果而不是故障。
func (d *DonorLogic) LookupByDonorId(donorId string) (*model.Donor, error) {
	if !isWellFormedDonorId(donorId) {
		return nil, ErrInvalidDonorId
	}

	var donor model.Donor
	err := d.db.Where("donor_id = ?", donorId).
		Preload("Community").
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_received DESC")
		}).
		Preload("Donations.Allocations.Project").
		First(&donor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &donor, nil
}
