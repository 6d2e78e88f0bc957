package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project 受助人创业项目
type Project struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Category    string `json:"category"`
	CommunityId int64  `json:"community_id" gorm:"not null" binding:"required"`

	// 受助人信息
	BeneficiaryName    string `json:"beneficiary_name" gorm:"not null" binding:"required"`
	BeneficiaryPhone   string `json:"beneficiary_phone"`
	BeneficiaryEmail   string `json:"beneficiary_email"`
	BeneficiaryAddress string `json:"beneficiary_address" gorm:"type:text"`
	BeneficiaryCnic    string `json:"beneficiary_cnic"`
	FamilySize         int    `json:"family_size" gorm:"default:1"`

	// 项目详情
	Description  string `json:"description" gorm:"type:text"`
	BusinessPlan string `json:"business_plan" gorm:"type:text"`

	// 资金信息
	RequestedAmount decimal.Decimal  `json:"requested_amount" gorm:"type:decimal(12,2);not null"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount" gorm:"type:decimal(12,2)"`
	Currency        Currency         `json:"currency" gorm:"size:3;default:'USD'"`

	// 回收信息。TotalRecovered 是反范式缓存，由 RecoveryLogic 在每次回收写入
	// 时同事务刷新；资金端 total_funded 始终实时聚合，不做缓存。审计任务会
	// 定期核对缓存与回收明细是否一致。
	ExpectedMonthlyRecovery *decimal.Decimal `json:"expected_monthly_recovery" gorm:"type:decimal(12,2)"`
	RecoveryStartDate       *time.Time       `json:"recovery_start_date"`
	TotalRecovered          decimal.Decimal  `json:"total_recovered" gorm:"type:decimal(12,2);default:0"`

	// 状态与流程
	Status            ProjectStatus `json:"status" gorm:"size:15;default:'PENDING'"`
	ApplicationDate   time.Time     `json:"application_date"`
	ApprovalDate      *time.Time    `json:"approval_date"`
	FundingDate       *time.Time    `json:"funding_date"`
	EstablishmentDate *time.Time    `json:"establishment_date"`

	// 内部备注
	VerificationNotes string `json:"verification_notes" gorm:"type:text"`
	AdminNotes        string `json:"admin_notes" gorm:"type:text"`

	// 可见性
	IsFeatured bool `json:"is_featured" gorm:"default:false"`
	IsPublic   bool `json:"is_public" gorm:"default:true"`

	// 关联
	Community   *Community           `json:"community,omitempty" gorm:"foreignKey:CommunityId"`
	Allocations []DonationAllocation `json:"allocations,omitempty" gorm:"foreignKey:ProjectId"`
	Updates     []ProjectUpdate      `json:"updates,omitempty" gorm:"foreignKey:ProjectId"`
	Recoveries  []Recovery           `json:"recoveries,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}

// hundred 百分比上限
var hundred = decimal.NewFromInt(100)

// FundingProgress 资金进度百分比，封顶100。totalFunded 由调用方实时聚合传入。
func (p *Project) FundingProgress(totalFunded decimal.Decimal) decimal.Decimal {
	if p.ApprovedAmount == nil || p.ApprovedAmount.IsZero() {
		return decimal.Zero
	}
	progress := totalFunded.Div(*p.ApprovedAmount).Mul(hundred)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}

// IsFullyFunded 是否已足额拨款
func (p *Project) IsFullyFunded(totalFunded decimal.Decimal) bool {
	if p.ApprovedAmount == nil {
		return false
	}
	return totalFunded.GreaterThanOrEqual(*p.ApprovedAmount)
}

// RecoveryProgress 回收进度百分比，封顶100
func (p *Project) RecoveryProgress() decimal.Decimal {
	if p.ApprovedAmount == nil || p.ApprovedAmount.IsZero() {
		return decimal.Zero
	}
	progress := p.TotalRecovered.Div(*p.ApprovedAmount).Mul(hundred)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending     ProjectStatus = "PENDING"     // 待审批
	ProjectStatusApproved    ProjectStatus = "APPROVED"    // 已审批，等待拨款
	ProjectStatusFunded      ProjectStatus = "FUNDED"      // 已拨款，筹备中
	ProjectStatusEstablished ProjectStatus = "ESTABLISHED" // 已建立，运营中
	ProjectStatusRecovering  ProjectStatus = "RECOVERING"  // 回收中
	ProjectStatusCompleted   ProjectStatus = "COMPLETED"   // 已完成
	ProjectStatusRejected    ProjectStatus = "REJECTED"    // 已拒绝
	ProjectStatusOnHold      ProjectStatus = "ON_HOLD"     // 暂停
)

// statusTransitions 状态机：正向流程 + 任意未完成状态可转入 REJECTED / ON_HOLD。
// 状态由工作人员手动推进，系统不自动流转。
var statusTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPending:     {ProjectStatusApproved, ProjectStatusRejected, ProjectStatusOnHold},
	ProjectStatusApproved:    {ProjectStatusFunded, ProjectStatusRejected, ProjectStatusOnHold},
	ProjectStatusFunded:      {ProjectStatusEstablished, ProjectStatusRejected, ProjectStatusOnHold},
	ProjectStatusEstablished: {ProjectStatusRecovering, ProjectStatusRejected, ProjectStatusOnHold},
	ProjectStatusRecovering:  {ProjectStatusCompleted, ProjectStatusRejected, ProjectStatusOnHold},
	ProjectStatusOnHold: {
		ProjectStatusPending, ProjectStatusApproved, ProjectStatusFunded,
		ProjectStatusEstablished, ProjectStatusRecovering, ProjectStatusRejected,
	},
	ProjectStatusCompleted: {},
	ProjectStatusRejected:  {},
}

// CanTransitionTo 判断状态流转是否合法
func (p *Project) CanTransitionTo(target ProjectStatus) bool {
	for _, s := range statusTransitions[p.Status] {
		if s == target {
			return true
		}
	}
	return false
}
