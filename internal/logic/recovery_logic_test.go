package logic

import (
	"errors"
	"testing"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func reloadProject(t *testing.T, db *gorm.DB, id int64) *model.Project {
	t.Helper()
	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		t.Fatalf("reload project: %v", err)
	}
	return &project
}

func TestRecordRecoveryRefreshesCacheAfterEachWrite(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "1000")

	rl := NewRecoveryLogic(db)

	if err := rl.RecordRecovery(&model.Recovery{
		ProjectId: project.Id,
		Amount:    mustDecimal(t, "200"),
	}); err != nil {
		t.Fatalf("record first recovery: %v", err)
	}
	if got := reloadProject(t, db, project.Id).TotalRecovered; !got.Equal(mustDecimal(t, "200")) {
		t.Fatalf("after first recovery: total_recovered = %s, want 200", got)
	}

	if err := rl.RecordRecovery(&model.Recovery{
		ProjectId: project.Id,
		Amount:    mustDecimal(t, "300"),
	}); err != nil {
		t.Fatalf("record second recovery: %v", err)
	}
	if got := reloadProject(t, db, project.Id).TotalRecovered; !got.Equal(mustDecimal(t, "500")) {
		t.Fatalf("after second recovery: total_recovered = %s, want 500", got)
	}
}

func TestRecoveryCacheMatchesLedgerAfterUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "1000")

	rl := NewRecoveryLogic(db)

	first := &model.Recovery{ProjectId: project.Id, Amount: mustDecimal(t, "200")}
	second := &model.Recovery{ProjectId: project.Id, Amount: mustDecimal(t, "300")}
	if err := rl.RecordRecovery(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := rl.RecordRecovery(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	if err := rl.UpdateRecovery(first.Id, map[string]interface{}{
		"amount": mustDecimal(t, "250"),
	}); err != nil {
		t.Fatalf("update recovery: %v", err)
	}
	assertCacheMatchesLedger(t, db, project.Id, "550")

	if err := rl.DeleteRecovery(second.Id); err != nil {
		t.Fatalf("delete recovery: %v", err)
	}
	assertCacheMatchesLedger(t, db, project.Id, "250")
}

// assertCacheMatchesLedger 缓存必须与回收明细之和一致
func assertCacheMatchesLedger(t *testing.T, db *gorm.DB, projectId int64, want string) {
	t.Helper()

	var ledgerSum decimal.Decimal
	if err := db.Model(&model.Recovery{}).
		Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&ledgerSum).Error; err != nil {
		t.Fatalf("sum recoveries: %v", err)
	}

	cached := reloadProject(t, db, projectId).TotalRecovered
	if !cached.Equal(ledgerSum) {
		t.Fatalf("cache %s drifted from ledger %s", cached, ledgerSum)
	}
	if !cached.Equal(mustDecimal(t, want)) {
		t.Fatalf("total_recovered = %s, want %s", cached, want)
	}
}

func TestRecordRecoveryValidation(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypePakistani)
	project := seedProject(t, db, community.Id, "1000")

	rl := NewRecoveryLogic(db)

	if err := rl.RecordRecovery(&model.Recovery{
		ProjectId: project.Id,
		Amount:    mustDecimal(t, "0"),
	}); !IsValidation(err) {
		t.Fatalf("zero amount: expected ValidationError, got %v", err)
	}

	if err := rl.RecordRecovery(&model.Recovery{
		ProjectId: 9999,
		Amount:    mustDecimal(t, "100"),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown project: expected ErrNotFound, got %v", err)
	}
}
