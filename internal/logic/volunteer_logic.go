package logic

import (
	"errors"
	"fmt"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"gorm.io/gorm"
)

// VolunteerLogic 志愿者业务逻辑
type VolunteerLogic struct {
	db *gorm.DB
}

// NewVolunteerLogic 创建志愿者业务逻辑
func NewVolunteerLogic(db *gorm.DB) *VolunteerLogic {
	return &VolunteerLogic{db: db}
}

// RegisterVolunteer 公开报名入口
func (v *VolunteerLogic) RegisterVolunteer(volunteer *model.Volunteer) error {
	if volunteer.Name == "" {
		return newValidationError("name", "志愿者姓名不能为空")
	}
	if volunteer.Email == "" {
		return newValidationError("email", "志愿者邮箱不能为空")
	}
	if volunteer.CommunityId == 0 {
		return newValidationError("community_id", "志愿者必须归属一个社区")
	}

	var community model.Community
	if err := v.db.First(&community, volunteer.CommunityId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("社区 %d: %w", volunteer.CommunityId, ErrNotFound)
		}
		return err
	}

	volunteer.IsApproved = false
	return v.db.Create(volunteer).Error
}

// GetVolunteers 按操作者权限获取志愿者列表
func (v *VolunteerLogic) GetVolunteers(actor model.Actor, page, pageSize int) ([]model.Volunteer, int64, error) {
	var volunteers []model.Volunteer
	var total int64

	if err := ScopedDB(v.db.Model(&model.Volunteer{}), actor, ScopeVolunteer).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := ScopedDB(v.db.Model(&model.Volunteer{}), actor, ScopeVolunteer).
		Preload("Community").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&volunteers).Error; err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

// ApproveVolunteer 审核通过志愿者
func (v *VolunteerLogic) ApproveVolunteer(id int64) error {
	result := v.db.Model(&model.Volunteer{}).Where("id = ?", id).
		Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("志愿者 %d: %w", id, ErrNotFound)
	}
	return nil
}
