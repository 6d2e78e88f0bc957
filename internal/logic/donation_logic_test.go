package logic

import (
	"errors"
	"testing"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
)

func TestCreateDonationDefaults(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypeInternational)
	donor := seedDonor(t, db, community.Id, "600000006")

	dl := NewDonationLogic(db)
	donation := &model.Donation{
		DonorId: donor.Id,
		Amount:  mustDecimal(t, "250"),
	}
	if err := dl.CreateDonation(donation); err != nil {
		t.Fatalf("create: %v", err)
	}
	if donation.Currency != model.CurrencyUSD {
		t.Fatalf("currency = %s, want USD", donation.Currency)
	}
	if donation.PaymentMethod != model.PaymentMethodBank {
		t.Fatalf("payment_method = %s, want BANK", donation.PaymentMethod)
	}
	if donation.DateReceived.IsZero() {
		t.Fatalf("date_received not defaulted")
	}
}

func TestCreateDonationValidation(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypeInternational)
	donor := seedDonor(t, db, community.Id, "600000007")

	dl := NewDonationLogic(db)

	if err := dl.CreateDonation(&model.Donation{Amount: mustDecimal(t, "100")}); !IsValidation(err) {
		t.Fatalf("missing donor: expected ValidationError, got %v", err)
	}
	if err := dl.CreateDonation(&model.Donation{DonorId: donor.Id, Amount: decimal.Zero}); !IsValidation(err) {
		t.Fatalf("zero amount: expected ValidationError, got %v", err)
	}
	if err := dl.CreateDonation(&model.Donation{DonorId: 9999, Amount: mustDecimal(t, "100")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown donor: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDonationForbidsShrinkBelowAllocated(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypeInternational)
	donor := seedDonor(t, db, community.Id, "600000008")
	donation := seedDonation(t, db, donor.Id, "1000")
	project := seedProject(t, db, community.Id, "")

	al := NewAllocationLogic(db)
	if _, err := al.Allocate(donation.Id, project.Id, mustDecimal(t, "600"), ""); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	dl := NewDonationLogic(db)

	// 低于已分配合计600，必须拒绝
	err := dl.UpdateDonation(donation.Id, map[string]interface{}{
		"amount": mustDecimal(t, "500"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Remaining == nil || !verr.Remaining.Equal(mustDecimal(t, "600")) {
		t.Fatalf("remaining = %v, want 600", verr.Remaining)
	}

	// 恰好等于已分配合计，以及继续调高，都允许
	if err := dl.UpdateDonation(donation.Id, map[string]interface{}{
		"amount": mustDecimal(t, "600"),
	}); err != nil {
		t.Fatalf("shrink to allocated: %v", err)
	}
	if err := dl.UpdateDonation(donation.Id, map[string]interface{}{
		"amount": mustDecimal(t, "1200"),
	}); err != nil {
		t.Fatalf("raise amount: %v", err)
	}

	loaded, err := dl.GetDonation(donation.Id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Amount.Equal(mustDecimal(t, "1200")) {
		t.Fatalf("amount = %s, want 1200", loaded.Amount)
	}
}

func TestDeleteDonationProtectedByAllocations(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypeInternational)
	donor := seedDonor(t, db, community.Id, "600000009")
	donation := seedDonation(t, db, donor.Id, "400")
	project := seedProject(t, db, community.Id, "")

	al := NewAllocationLogic(db)
	allocation, err := al.Allocate(donation.Id, project.Id, mustDecimal(t, "100"), "")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	dl := NewDonationLogic(db)
	if err := dl.DeleteDonation(donation.Id); !errors.Is(err, ErrProtected) {
		t.Fatalf("expected ErrProtected, got %v", err)
	}

	// 删除分配后即可删除捐赠
	if err := al.DeleteAllocation(allocation.Id); err != nil {
		t.Fatalf("delete allocation: %v", err)
	}
	if err := dl.DeleteDonation(donation.Id); err != nil {
		t.Fatalf("delete donation: %v", err)
	}
	if _, err := dl.GetDonation(donation.Id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetDonationStats(t *testing.T) {
	db := newTestDB(t)
	community := seedCommunity(t, db, model.CommunityTypeInternational)
	donor := seedDonor(t, db, community.Id, "600000010")
	donationA := seedDonation(t, db, donor.Id, "1000")
	seedDonation(t, db, donor.Id, "500")
	project := seedProject(t, db, community.Id, "")

	al := NewAllocationLogic(db)
	if _, err := al.Allocate(donationA.Id, project.Id, mustDecimal(t, "400"), ""); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	dl := NewDonationLogic(db)
	stats, err := dl.GetDonationStats(directorActor())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if total := stats["total_amount"].(decimal.Decimal); !total.Equal(mustDecimal(t, "1500")) {
		t.Fatalf("total_amount = %s, want 1500", total)
	}
	if count := stats["total_count"].(int64); count != 2 {
		t.Fatalf("total_count = %d, want 2", count)
	}
	if unallocated := stats["unallocated"].(decimal.Decimal); !unallocated.Equal(mustDecimal(t, "1100")) {
		t.Fatalf("unallocated = %s, want 1100", unallocated)
	}
}
