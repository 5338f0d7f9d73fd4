package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"meta-invest/internal/models"
)

func TestFundAccountCreditsAndLogs(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	svc := NewAdminService(db, ledger)

	admin, err := svc.CreateAdmin("200000010", "adminpass", "OPERATOR")
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	user := createTestUser(t, db, "241600001", "80001", decimal.Zero)

	if err := svc.FundAccount(admin.ID, user.ID, decimal.NewFromInt(200), "promo top-up"); err != nil {
		t.Fatalf("fund failed: %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected balance 200, got %s", reloaded.Balance)
	}

	var entry models.LedgerEntry
	if err := db.Where("user_id = ? AND kind = ?", user.ID, models.EntryAdminFunding).First(&entry).Error; err != nil {
		t.Fatalf("expected an admin funding entry: %v", err)
	}

	var logEntry models.AdminLog
	if err := db.Where("admin_id = ? AND action = ?", admin.ID, "fund_account").First(&logEntry).Error; err != nil {
		t.Fatalf("expected an audit log entry: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	svc := NewAdminService(db, ledger)
	review := NewReviewService(db, ledger, decimal.NewFromInt(40), decimal.NewFromInt(20))

	admin, _ := svc.CreateAdmin("200000011", "adminpass", "SUPER_ADMIN")
	user := createTestUser(t, db, "241600002", "80002", decimal.NewFromInt(500))
	wallet := createTestWallet(t, db, user.ID)

	review.SubmitRecharge(user.ID, decimal.NewFromInt(50), "12345678901")
	review.RequestWithdrawal(user.ID, decimal.NewFromInt(30), wallet.ID)
	investments := newInvestmentService(db)
	investments.Purchase(user.ID, 1)

	if err := svc.DeleteUser(admin.ID, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	tables := map[string]interface{}{
		"users":            &models.User{},
		"wallets":          &models.Wallet{},
		"investments":      &models.Investment{},
		"withdrawals":      &models.Withdrawal{},
		"recharge_records": &models.RechargeRecord{},
		"ledger_entries":   &models.LedgerEntry{},
	}
	for name, model := range tables {
		var count int64
		query := db.Model(model)
		if name == "users" {
			query = query.Where("id = ?", user.ID)
		} else {
			query = query.Where("user_id = ?", user.ID)
		}
		query.Count(&count)
		if count != 0 {
			t.Errorf("expected no %s rows for deleted user, found %d", name, count)
		}
	}

	if err := svc.DeleteUser(admin.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGetAllUsersPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewLedgerService(db))

	for i := 0; i < 5; i++ {
		createTestUser(t, db, "24170000"+string(rune('0'+i)), "9000"+string(rune('0'+i)), decimal.Zero)
	}

	users, total, err := svc.GetAllUsers(1, 2, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(users) != 2 {
		t.Errorf("expected page of 2, got %d", len(users))
	}

	users2, _, _ := svc.GetAllUsers(3, 2, "")
	if len(users2) != 1 {
		t.Errorf("expected last page of 1, got %d", len(users2))
	}

	filtered, filteredTotal, err := svc.GetAllUsers(1, 50, "2417000")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if filteredTotal != 5 || len(filtered) != 5 {
		t.Errorf("expected mobile prefix to match all 5, got %d/%d", len(filtered), filteredTotal)
	}
}
