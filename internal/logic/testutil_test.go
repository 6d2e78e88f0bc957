package logic

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试用例一个独立的sqlite库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Community{},
		&model.User{},
		&model.Donor{},
		&model.Donation{},
		&model.DonationAllocation{},
		&model.Project{},
		&model.ProjectUpdate{},
		&model.Recovery{},
		&model.Volunteer{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedCommunity(t *testing.T, db *gorm.DB, typ model.CommunityType) *model.Community {
	t.Helper()
	community := &model.Community{
		Name:          string(typ) + " community",
		CommunityType: typ,
		IsActive:      true,
	}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("seed community: %v", err)
	}
	return community
}

func seedDonor(t *testing.T, db *gorm.DB, communityId int64, donorId string) *model.Donor {
	t.Helper()
	donor := &model.Donor{
		DonorId:     donorId,
		Name:        "Test Donor " + donorId,
		CommunityId: communityId,
	}
	if err := db.Create(donor).Error; err != nil {
		t.Fatalf("seed donor: %v", err)
	}
	return donor
}

func seedDonation(t *testing.T, db *gorm.DB, donorId int64, amount string) *model.Donation {
	t.Helper()
	donation := &model.Donation{
		DonorId:       donorId,
		Amount:        mustDecimal(t, amount),
		Currency:      model.CurrencyUSD,
		PaymentMethod: model.PaymentMethodBank,
		DateReceived:  time.Now(),
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func seedProject(t *testing.T, db *gorm.DB, communityId int64, approvedAmount string) *model.Project {
	t.Helper()
	project := &model.Project{
		Title:           "Test Project",
		CommunityId:     communityId,
		BeneficiaryName: "Test Beneficiary",
		RequestedAmount: mustDecimal(t, "1000"),
		Currency:        model.CurrencyUSD,
		Status:          model.ProjectStatusApproved,
		ApplicationDate: time.Now(),
	}
	if approvedAmount != "" {
		approved := mustDecimal(t, approvedAmount)
		project.ApprovedAmount = &approved
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

// directorActor 不受限的总监
func directorActor() model.Actor {
	return model.Actor{UserId: 1, Role: model.RoleDirector}
}

// managerActor 带社区归属的管理员
func managerActor(communityId int64) model.Actor {
	return model.Actor{UserId: 2, Role: model.RolePakManager, CommunityId: &communityId}
}
