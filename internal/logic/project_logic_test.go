package logic

import (
	"errors"
	"testing"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
)

func TestGetProjectStatsClampsProgressButKeepsRawTotal(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "1000")
	donor := seedDonor(t, db, community.Id, "300000003")
	donationA := seedDonation(t, db, donor.Id, "1000")
	donationB := seedDonation(t, db, donor.Id, "500")

	al := NewAllocationLogic(db)
	if _, err := al.Allocate(donationA.Id, project.Id, mustDecimal(t, "1000"), ""); err != nil {
		t.Fatalf("allocate A: %v", err)
	}
	if _, err := al.Allocate(donationB.Id, project.Id, mustDecimal(t, "500"), ""); err != nil {
		t.Fatalf("allocate B: %v", err)
	}

	pl := NewProjectLogic(db)
	stats, err := pl.GetProjectStats(project.Id)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	// 超额拨款：百分比封顶100，但拨款总额如实体现1500
	totalFunded := stats["total_funded"].(decimal.Decimal)
	if !totalFunded.Equal(mustDecimal(t, "1500")) {
		t.Fatalf("total_funded = %s, want 1500", totalFunded)
	}
	progress := stats["funding_progress"].(decimal.Decimal)
	if !progress.Equal(mustDecimal(t, "100")) {
		t.Fatalf("funding_progress = %s, want 100", progress)
	}
	if !stats["is_fully_funded"].(bool) {
		t.Fatalf("expected fully funded")
	}

	// 同一捐赠人经两笔捐赠分配，只计一个捐赠人
	if got := stats["donor_count"].(int64); got != 1 {
		t.Fatalf("donor_count = %d, want 1", got)
	}
}

func TestDonorCountDistinctAcrossDonors(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "2000")
	donorA := seedDonor(t, db, community.Id, "400000004")
	donorB := seedDonor(t, db, community.Id, "500000005")
	donationA := seedDonation(t, db, donorA.Id, "300")
	donationB := seedDonation(t, db, donorB.Id, "300")

	al := NewAllocationLogic(db)
	if _, err := al.Allocate(donationA.Id, project.Id, mustDecimal(t, "300"), ""); err != nil {
		t.Fatalf("allocate A: %v", err)
	}
	if _, err := al.Allocate(donationB.Id, project.Id, mustDecimal(t, "300"), ""); err != nil {
		t.Fatalf("allocate B: %v", err)
	}

	pl := NewProjectLogic(db)
	count, err := pl.DonorCount(project.Id)
	if err != nil {
		t.Fatalf("donor count: %v", err)
	}
	if count != 2 {
		t.Fatalf("donor_count = %d, want 2", count)
	}
}

func TestCreateProjectForcesPendingStatus(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)

	pl := NewProjectLogic(db)
	project := &model.Project{
		Title:           "Tailoring shop",
		CommunityId:     community.Id,
		BeneficiaryName: "B",
		RequestedAmount: mustDecimal(t, "800"),
		Status:          model.ProjectStatusFunded, // 调用方不可指定状态
	}
	if err := pl.CreateProject(project); err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Status != model.ProjectStatusPending {
		t.Fatalf("status = %s, want PENDING", project.Status)
	}
	if project.ApplicationDate.IsZero() {
		t.Fatalf("application date not stamped")
	}
}

func TestUpdateProjectStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)

	pl := NewProjectLogic(db)
	project := &model.Project{
		Title:           "Grocery stall",
		CommunityId:     community.Id,
		BeneficiaryName: "B",
		RequestedAmount: mustDecimal(t, "800"),
	}
	if err := pl.CreateProject(project); err != nil {
		t.Fatalf("create: %v", err)
	}

	// 跳级流转不合法
	if err := pl.UpdateProjectStatus(project.Id, model.ProjectStatusFunded); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("PENDING->FUNDED: expected ErrInvalidTransition, got %v", err)
	}

	chain := []model.ProjectStatus{
		model.ProjectStatusApproved,
		model.ProjectStatusFunded,
		model.ProjectStatusEstablished,
		model.ProjectStatusRecovering,
		model.ProjectStatusCompleted,
	}
	for _, status := range chain {
		if err := pl.UpdateProjectStatus(project.Id, status); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	loaded, err := pl.GetProject(project.Id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.ApprovalDate == nil || loaded.FundingDate == nil || loaded.EstablishmentDate == nil {
		t.Fatalf("workflow dates not stamped: %+v", loaded)
	}

	// COMPLETED 是预期的吸收态
	if err := pl.UpdateProjectStatus(project.Id, model.ProjectStatusOnHold); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("COMPLETED->ON_HOLD: expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateProjectStatusSideExitsAndResume(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)

	pl := NewProjectLogic(db)
	project := &model.Project{
		Title:           "Poultry farm",
		CommunityId:     community.Id,
		BeneficiaryName: "B",
		RequestedAmount: mustDecimal(t, "800"),
	}
	if err := pl.CreateProject(project); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := pl.UpdateProjectStatus(project.Id, model.ProjectStatusOnHold); err != nil {
		t.Fatalf("PENDING->ON_HOLD: %v", err)
	}
	if err := pl.UpdateProjectStatus(project.Id, model.ProjectStatusApproved); err != nil {
		t.Fatalf("ON_HOLD->APPROVED: %v", err)
	}
	if err := pl.UpdateProjectStatus(project.Id, model.ProjectStatusRejected); err != nil {
		t.Fatalf("APPROVED->REJECTED: %v", err)
	}
}

func TestUpdateProjectRejectsStatusField(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "")

	pl := NewProjectLogic(db)
	err := pl.UpdateProject(project.Id, map[string]interface{}{
		"status": model.ProjectStatusCompleted,
	})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
