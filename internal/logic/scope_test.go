package logic

import (
	"testing"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"gorm.io/gorm"
)

// scopeFixture 两个社区各一套捐赠人/捐赠/项目/分配/回收
type scopeFixture struct {
	db           *gorm.DB
	intl, pak    *model.Community
	intlDonor    *model.Donor
	pakDonor     *model.Donor
	intlProject  *model.Project
	pakProject   *model.Project
	intlDonation *model.Donation
	pakDonation  *model.Donation
}

func newScopeFixture(t *testing.T) *scopeFixture {
	t.Helper()
	db := newTestDB(t)

	f := &scopeFixture{db: db}
	f.intl = seedCommunity(t, db, model.CommunityTypeInternational)
	f.pak = seedCommunity(t, db, model.CommunityTypePakistani)
	f.intlDonor = seedDonor(t, db, f.intl.Id, "100000001")
	f.pakDonor = seedDonor(t, db, f.pak.Id, "200000002")
	f.intlProject = seedProject(t, db, f.intl.Id, "1000")
	f.pakProject = seedProject(t, db, f.pak.Id, "1000")
	f.intlDonation = seedDonation(t, db, f.intlDonor.Id, "500")
	f.pakDonation = seedDonation(t, db, f.pakDonor.Id, "500")

	al := NewAllocationLogic(db)
	if _, err := al.Allocate(f.intlDonation.Id, f.intlProject.Id, mustDecimal(t, "200"), ""); err != nil {
		t.Fatalf("allocate intl: %v", err)
	}
	if _, err := al.Allocate(f.pakDonation.Id, f.pakProject.Id, mustDecimal(t, "200"), ""); err != nil {
		t.Fatalf("allocate pak: %v", err)
	}

	rl := NewRecoveryLogic(db)
	if err := rl.RecordRecovery(&model.Recovery{ProjectId: f.pakProject.Id, Amount: mustDecimal(t, "50")}); err != nil {
		t.Fatalf("record recovery: %v", err)
	}

	return f
}

func countScoped(t *testing.T, db *gorm.DB, actor model.Actor, entity ScopeEntity, m interface{}) int64 {
	t.Helper()
	var count int64
	if err := ScopedDB(db.Model(m), actor, entity).Count(&count).Error; err != nil {
		t.Fatalf("scoped count: %v", err)
	}
	return count
}

func TestScopeDirectorSeesEverything(t *testing.T) {
	f := newScopeFixture(t)
	actor := directorActor()

	if got := countScoped(t, f.db, actor, ScopeDonor, &model.Donor{}); got != 2 {
		t.Fatalf("donors = %d, want 2", got)
	}
	if got := countScoped(t, f.db, actor, ScopeDonation, &model.Donation{}); got != 2 {
		t.Fatalf("donations = %d, want 2", got)
	}
	if got := countScoped(t, f.db, actor, ScopeProject, &model.Project{}); got != 2 {
		t.Fatalf("projects = %d, want 2", got)
	}
	if got := countScoped(t, f.db, actor, ScopeAllocation, &model.DonationAllocation{}); got != 2 {
		t.Fatalf("allocations = %d, want 2", got)
	}
}

func TestScopeSuperuserUnrestricted(t *testing.T) {
	f := newScopeFixture(t)
	actor := model.Actor{UserId: 9, Role: model.RoleStaff, IsSuperuser: true}

	if got := countScoped(t, f.db, actor, ScopeDonor, &model.Donor{}); got != 2 {
		t.Fatalf("donors = %d, want 2", got)
	}
}

func TestScopeManagerRestrictedToOwnCommunity(t *testing.T) {
	f := newScopeFixture(t)
	actor := managerActor(f.pak.Id)

	if got := countScoped(t, f.db, actor, ScopeDonor, &model.Donor{}); got != 1 {
		t.Fatalf("donors = %d, want 1", got)
	}
	if got := countScoped(t, f.db, actor, ScopeDonation, &model.Donation{}); got != 1 {
		t.Fatalf("donations = %d, want 1", got)
	}
	if got := countScoped(t, f.db, actor, ScopeProject, &model.Project{}); got != 1 {
		t.Fatalf("projects = %d, want 1", got)
	}
	if got := countScoped(t, f.db, actor, ScopeAllocation, &model.DonationAllocation{}); got != 1 {
		t.Fatalf("allocations = %d, want 1", got)
	}
	if got := countScoped(t, f.db, actor, ScopeRecovery, &model.Recovery{}); got != 1 {
		t.Fatalf("recoveries = %d, want 1", got)
	}

	// 确认过滤出的是本社区的记录
	var donors []model.Donor
	if err := ScopedDB(f.db.Model(&model.Donor{}), actor, ScopeDonor).Find(&donors).Error; err != nil {
		t.Fatalf("scoped find: %v", err)
	}
	if len(donors) != 1 || donors[0].CommunityId != f.pak.Id {
		t.Fatalf("expected only pak donors, got %+v", donors)
	}
}

func TestScopeManagerWithoutCommunityFailsClosed(t *testing.T) {
	f := newScopeFixture(t)
	// 管理员角色但没有社区归属：一律空集，不是错误
	actor := model.Actor{UserId: 3, Role: model.RolePakManager}

	entities := []struct {
		entity ScopeEntity
		m      interface{}
	}{
		{ScopeDonor, &model.Donor{}},
		{ScopeDonation, &model.Donation{}},
		{ScopeAllocation, &model.DonationAllocation{}},
		{ScopeProject, &model.Project{}},
		{ScopeProjectUpdate, &model.ProjectUpdate{}},
		{ScopeRecovery, &model.Recovery{}},
		{ScopeVolunteer, &model.Volunteer{}},
	}
	for _, e := range entities {
		if got := countScoped(t, f.db, actor, e.entity, e.m); got != 0 {
			t.Fatalf("entity %d: count = %d, want 0", e.entity, got)
		}
	}
}

func TestScopeProjectListForCommunitylessManagerIsEmptyNotError(t *testing.T) {
	f := newScopeFixture(t)
	actor := model.Actor{UserId: 4, Role: model.RoleIntlManager}

	pl := NewProjectLogic(f.db)
	projects, total, err := pl.GetProjects(actor, "", "", 1, 20)
	if err != nil {
		t.Fatalf("expected empty result, not error: %v", err)
	}
	if total != 0 || len(projects) != 0 {
		t.Fatalf("expected empty project list, got %d", total)
	}
}

func TestScopeCrossCommunityAllocationHidden(t *testing.T) {
	f := newScopeFixture(t)

	// 国际捐赠拨给巴方项目：两边的社区管理员都不应看到这条跨社区分配
	al := NewAllocationLogic(f.db)
	if _, err := al.Allocate(f.intlDonation.Id, f.pakProject.Id, mustDecimal(t, "100"), ""); err != nil {
		t.Fatalf("cross allocate: %v", err)
	}

	if got := countScoped(t, f.db, managerActor(f.pak.Id), ScopeAllocation, &model.DonationAllocation{}); got != 1 {
		t.Fatalf("pak manager allocations = %d, want 1", got)
	}
	if got := countScoped(t, f.db, managerActor(f.intl.Id), ScopeAllocation, &model.DonationAllocation{}); got != 1 {
		t.Fatalf("intl manager allocations = %d, want 1", got)
	}
	if got := countScoped(t, f.db, directorActor(), ScopeAllocation, &model.DonationAllocation{}); got != 3 {
		t.Fatalf("director allocations = %d, want 3", got)
	}
}
