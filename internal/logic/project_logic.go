package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 创建项目申请。初始状态固定为 PENDING，不允许调用方指定。
func (p *ProjectLogic) CreateProject(project *model.Project) error {
	if err := p.validateProject(project); err != nil {
		return err
	}

	var community model.Community
	if err := p.db.First(&community, project.CommunityId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("社区 %d: %w", project.CommunityId, ErrNotFound)
		}
		return err
	}

	project.Status = model.ProjectStatusPending
	project.TotalRecovered = decimal.Zero
	project.ApplicationDate = time.Now()

	return p.db.Create(project).Error
}

// validateProject 校验项目数据
func (p *ProjectLogic) validateProject(project *model.Project) error {
	if project.Title == "" {
		return newValidationError("title", "项目标题不能为空")
	}
	if project.BeneficiaryName == "" {
		return newValidationError("beneficiary_name", "受助人姓名不能为空")
	}
	if project.CommunityId == 0 {
		return newValidationError("community_id", "项目必须归属一个社区")
	}
	if project.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return newValidationError("requested_amount", "申请金额必须大于0")
	}
	if project.ApprovedAmount != nil && project.ApprovedAmount.LessThanOrEqual(decimal.Zero) {
		return newValidationError("approved_amount", "批准金额必须大于0")
	}
	return nil
}

// GetProjects 按操作者权限获取项目列表，支持状态/分类过滤
func (p *ProjectLogic) GetProjects(actor model.Actor, status, category string, page, pageSize int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	build := func() *gorm.DB {
		q := ScopedDB(p.db.Model(&model.Project{}), actor, ScopeProject)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	}

	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := build().Preload("Community").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetPublicProjects 公开网站的项目列表，只含公开可见项目
func (p *ProjectLogic) GetPublicProjects(featuredOnly bool, page, pageSize int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	build := func() *gorm.DB {
		q := p.db.Model(&model.Project{}).Where("is_public = ?", true)
		if featuredOnly {
			q = q.Where("is_featured = ?", true)
		}
		return q
	}

	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := build().
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.Project, error) {
	var project model.Project
	if err := p.db.Preload("Community").
		Preload("Updates").
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("项目 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &project, nil
}

// UpdateProject 更新项目信息。状态字段走 UpdateProjectStatus，不在此处受理。
func (p *ProjectLogic) UpdateProject(id int64, updates map[string]interface{}) error {
	if _, ok := updates["status"]; ok {
		return newValidationError("status", "项目状态请通过状态接口变更")
	}
	if raw, ok := updates["approved_amount"]; ok {
		amount, ok := raw.(decimal.Decimal)
		if !ok || amount.LessThanOrEqual(decimal.Zero) {
			return newValidationError("approved_amount", "批准金额必须大于0")
		}
	}

	result := p.db.Model(&model.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("项目 %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateProjectStatus 由工作人员推进项目状态。只校验流转是否合法并在首次
// 进入审批/拨款/建立状态时盖章日期，系统自身从不自动流转。
func (p *ProjectLogic) UpdateProjectStatus(id int64, target model.ProjectStatus) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("项目 %d: %w", id, ErrNotFound)
			}
			return err
		}

		if !project.CanTransitionTo(target) {
			return fmt.Errorf("%s -> %s: %w", project.Status, target, ErrInvalidTransition)
		}

		now := time.Now()
		updates := map[string]interface{}{"status": target}
		switch target {
		case model.ProjectStatusApproved:
			if project.ApprovalDate == nil {
				updates["approval_date"] = now
			}
		case model.ProjectStatusFunded:
			if project.FundingDate == nil {
				updates["funding_date"] = now
			}
		case model.ProjectStatusEstablished:
			if project.EstablishmentDate == nil {
				updates["establishment_date"] = now
			}
		}

		return tx.Model(&project).Updates(updates).Error
	})
}

// TotalFunded 项目已获拨款合计，始终实时聚合，不做缓存
func (p *ProjectLogic) TotalFunded(projectId int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := p.db.Model(&model.DonationAllocation{}).
		Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// DonorCount 项目的独立捐赠人数。同一捐赠人经两笔捐赠分配只计一次。
func (p *ProjectLogic) DonorCount(projectId int64) (int64, error) {
	var count int64
	err := p.db.Model(&model.DonationAllocation{}).
		Joins("JOIN donation ON donation.id = donation_allocation.donation_id").
		Where("donation_allocation.project_id = ?", projectId).
		Distinct("donation.donor_id").
		Count(&count).Error
	return count, err
}

// GetProjectStats 项目资金与回收统计
func (p *ProjectLogic) GetProjectStats(id int64) (map[string]interface{}, error) {
	var project model.Project
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("项目 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	totalFunded, err := p.TotalFunded(id)
	if err != nil {
		return nil, fmt.Errorf("统计拨款总额失败: %w", err)
	}

	donorCount, err := p.DonorCount(id)
	if err != nil {
		return nil, fmt.Errorf("统计捐赠人数失败: %w", err)
	}

	return map[string]interface{}{
		"project_id":        project.Id,
		"status":            project.Status,
		"requested_amount":  project.RequestedAmount,
		"approved_amount":   project.ApprovedAmount,
		"total_funded":      totalFunded,
		"funding_progress":  project.FundingProgress(totalFunded),
		"is_fully_funded":   project.IsFullyFunded(totalFunded),
		"total_recovered":   project.TotalRecovered,
		"recovery_progress": project.RecoveryProgress(),
		"donor_count":       donorCount,
	}, nil
}

// AddProjectUpdate 发布项目进展
func (p *ProjectLogic) AddProjectUpdate(update *model.ProjectUpdate) error {
	if update.Title == "" {
		return newValidationError("title", "进展标题不能为空")
	}

	var project model.Project
	if err := p.db.First(&project, update.ProjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("项目 %d: %w", update.ProjectId, ErrNotFound)
		}
		return err
	}

	return p.db.Create(update).Error
}

// GetProjectUpdates 获取项目进展列表
func (p *ProjectLogic) GetProjectUpdates(projectId int64) ([]model.ProjectUpdate, error) {
	var updates []model.ProjectUpdate
	if err := p.db.Where("project_id = ?", projectId).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}
