package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meta-invest/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LedgerEntry{},
		&models.Wallet{},
		&models.Investment{},
		&models.Withdrawal{},
		&models.RechargeRecord{},
		&models.BonusCode{},
		&models.AdminUser{},
		&models.AdminLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, mobile, referralCode string, balance decimal.Decimal) *models.User {
	user := models.User{
		Mobile:       mobile,
		Password:     "hashed",
		Balance:      balance,
		ReferralCode: referralCode,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func TestCreditUpdatesBalanceAndRecordsEntry(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	user := createTestUser(t, db, "241000001", "10001", decimal.Zero)

	if err := ledger.Credit(db, user.ID, models.EntryDeposit, decimal.NewFromInt(50), "test deposit"); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance 50, got %s", reloaded.Balance)
	}

	var entry models.LedgerEntry
	if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
		t.Fatalf("expected a ledger entry: %v", err)
	}
	if entry.Kind != models.EntryDeposit {
		t.Errorf("expected kind %s, got %s", models.EntryDeposit, entry.Kind)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected entry amount 50, got %s", entry.Amount)
	}
	if !entry.BalanceAfter.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance_after 50, got %s", entry.BalanceAfter)
	}
	if entry.Reference == "" {
		t.Error("expected a non-empty reference")
	}
}

func TestDebitRejectsOverdraft(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	user := createTestUser(t, db, "241000002", "10002", decimal.NewFromInt(30))

	err := ledger.Debit(db, user.ID, models.EntryPurchase, decimal.NewFromInt(60), "too much")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("balance should be untouched, got %s", reloaded.Balance)
	}

	var count int64
	db.Model(&models.LedgerEntry{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("no entry should be written for a failed debit, found %d", count)
	}
}

func TestDebitRecordsNegativeAmount(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	user := createTestUser(t, db, "241000003", "10003", decimal.NewFromInt(100))

	if err := ledger.Debit(db, user.ID, models.EntryWithdrawal, decimal.NewFromInt(40), "withdrawal hold"); err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	var entry models.LedgerEntry
	db.Where("user_id = ?", user.ID).First(&entry)
	if !entry.Amount.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("expected entry amount -40, got %s", entry.Amount)
	}
	if !entry.BalanceAfter.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected balance_after 60, got %s", entry.BalanceAfter)
	}
}

func TestCreditRejectsNonPositiveAmounts(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	user := createTestUser(t, db, "241000004", "10004", decimal.Zero)

	if err := ledger.Credit(db, user.ID, models.EntryDeposit, decimal.Zero, "zero"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := ledger.Credit(db, user.ID, models.EntryDeposit, decimal.NewFromInt(-5), "negative"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestDebitUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	err := ledger.Debit(db, 9999, models.EntryPurchase, decimal.NewFromInt(10), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntriesFilterByKind(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	user := createTestUser(t, db, "241000005", "10005", decimal.Zero)

	ledger.Credit(db, user.ID, models.EntryDeposit, decimal.NewFromInt(50), "deposit")
	ledger.Credit(db, user.ID, models.EntrySignupBonus, decimal.NewFromInt(20), "bonus")
	ledger.Debit(db, user.ID, models.EntryPurchase, decimal.NewFromInt(60), "purchase")

	entries, err := ledger.Entries(user.ID, models.EntryDeposit, 0)
	if err != nil {
		t.Fatalf("entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 deposit entry, got %d", len(entries))
	}

	all, err := ledger.Entries(user.ID, "", 0)
	if err != nil {
		t.Fatalf("entries failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}
