package logic

import (
	"errors"
	"fmt"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"gorm.io/gorm"
)

// CommunityLogic 社区业务逻辑
type CommunityLogic struct {
	db *gorm.DB
}

// NewCommunityLogic 创建社区业务逻辑
func NewCommunityLogic(db *gorm.DB) *CommunityLogic {
	return &CommunityLogic{db: db}
}

// CreateCommunity 创建社区
func (c *CommunityLogic) CreateCommunity(community *model.Community) error {
	if community.Name == "" {
		return newValidationError("name", "社区名称不能为空")
	}
	if community.CommunityType == "" {
		return newValidationError("community_type", "社区类型不能为空")
	}
	return c.db.Create(community).Error
}

// GetCommunities 获取社区列表
func (c *CommunityLogic) GetCommunities() ([]model.Community, error) {
	var communities []model.Community
	if err := c.db.Order("community_type").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

// UpdateCommunity 更新社区。被财务记录引用后只允许改描述和启用状态。
func (c *CommunityLogic) UpdateCommunity(id int64, updates map[string]interface{}) error {
	var referenced int64
	if err := c.db.Model(&model.Donor{}).Where("community_id = ?", id).
		Count(&referenced).Error; err != nil {
		return err
	}
	if referenced == 0 {
		if err := c.db.Model(&model.Project{}).Where("community_id = ?", id).
			Count(&referenced).Error; err != nil {
			return err
		}
	}
	if referenced > 0 {
		for field := range updates {
			if field != "description" && field != "is_active" {
				return newValidationError(field, "社区已被财务记录引用，只能修改描述和启用状态")
			}
		}
	}

	result := c.db.Model(&model.Community{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("社区 %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteCommunity 删除社区。被捐赠人或项目引用时禁止删除。
func (c *CommunityLogic) DeleteCommunity(id int64) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		var community model.Community
		if err := tx.First(&community, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("社区 %d: %w", id, ErrNotFound)
			}
			return err
		}

		var donorCount, projectCount int64
		if err := tx.Model(&model.Donor{}).Where("community_id = ?", id).
			Count(&donorCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Project{}).Where("community_id = ?", id).
			Count(&projectCount).Error; err != nil {
			return err
		}
		if donorCount > 0 || projectCount > 0 {
			return fmt.Errorf("社区 %d 仍被引用: %w", id, ErrProtected)
		}

		return tx.Delete(&community).Error
	})
}
