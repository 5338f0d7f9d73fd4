package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(db, NewLedgerService(db), decimal.NewFromInt(40), decimal.NewFromInt(20))
}

func createTestWallet(t *testing.T, db *gorm.DB, userID uint) *models.Wallet {
	wallet := models.Wallet{
		UserID:        userID,
		Carrier:       models.CarrierMTN,
		HolderName:    "Test Holder",
		AccountNumber: "0241234567",
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return &wallet
}

func TestSubmitRechargeValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200001", "40001", decimal.Zero)

	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(30), "12345678901"); !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("expected ErrBelowMinimum for amount under 40, got %v", err)
	}
	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(50), "12345"); !errors.Is(err, ErrInvalidTxnID) {
		t.Errorf("expected ErrInvalidTxnID for short id, got %v", err)
	}
	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(50), "1234567890a"); !errors.Is(err, ErrInvalidTxnID) {
		t.Errorf("expected ErrInvalidTxnID for non-digits, got %v", err)
	}
	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(-10), "12345678901"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	// 11 and 16 digit ids are both accepted.
	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(50), "12345678901"); err != nil {
		t.Errorf("11-digit txn id should be accepted: %v", err)
	}
	if _, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(50), "1234567890123456"); err != nil {
		t.Errorf("16-digit txn id should be accepted: %v", err)
	}
}

func TestSubmitRechargeRejectsDuplicateTxnID(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	a := createTestUser(t, db, "241200002", "40002", decimal.Zero)
	b := createTestUser(t, db, "241200003", "40003", decimal.Zero)

	if _, err := svc.SubmitRecharge(a.ID, decimal.NewFromInt(50), "12345678901"); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Same id again, even from another user.
	if _, err := svc.SubmitRecharge(b.ID, decimal.NewFromInt(50), "12345678901"); !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}
}

func TestSubmitRechargeDoesNotTouchBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200004", "40004", decimal.Zero)

	record, err := svc.SubmitRecharge(user.ID, decimal.NewFromInt(100), "12345678901")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Status != models.StatusPending {
		t.Errorf("expected pending status, got %s", record.Status)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.Zero) {
		t.Errorf("submission must not credit anything, got %s", reloaded.Balance)
	}
}

func TestApproveRechargeCreditsExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200005", "40005", decimal.Zero)
	record, _ := svc.SubmitRecharge(user.ID, decimal.NewFromInt(100), "12345678901")

	if err := svc.ApproveRecharge(record.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Second approval must be a no-op error, not a second credit.
	if err := svc.ApproveRecharge(record.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100 after single credit, got %s", reloaded.Balance)
	}
}

func TestRejectRechargeMovesNoMoney(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200006", "40006", decimal.Zero)
	record, _ := svc.SubmitRecharge(user.ID, decimal.NewFromInt(100), "12345678901")

	if err := svc.RejectRecharge(record.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// Approve after reject must not credit.
	if err := svc.ApproveRecharge(record.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.Zero) {
		t.Errorf("rejected recharge must not credit, got %s", reloaded.Balance)
	}
}

func TestRequestWithdrawalDebitsUpFront(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200007", "40007", decimal.NewFromInt(100))
	wallet := createTestWallet(t, db, user.ID)

	withdrawal, err := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(60), wallet.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if withdrawal.Status != models.StatusPending {
		t.Errorf("expected pending status, got %s", withdrawal.Status)
	}
	if withdrawal.Carrier != models.CarrierMTN || withdrawal.AccountNumber != wallet.AccountNumber {
		t.Error("withdrawal should snapshot the wallet details")
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected balance 40 after hold, got %s", reloaded.Balance)
	}

	// The held money cannot back a second withdrawal.
	if _, err := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(60), wallet.ID); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestRequestWithdrawalValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200008", "40008", decimal.NewFromInt(100))
	wallet := createTestWallet(t, db, user.ID)

	if _, err := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(10), wallet.ID); !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("expected ErrBelowMinimum under 20, got %v", err)
	}
	if _, err := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(30), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown wallet, got %v", err)
	}

	// Another user's wallet is not reachable.
	other := createTestUser(t, db, "241200009", "40009", decimal.NewFromInt(100))
	otherWallet := createTestWallet(t, db, other.ID)
	if _, err := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(30), otherWallet.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign wallet, got %v", err)
	}
}

func TestApproveWithdrawalMovesNoFurtherMoney(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200010", "40010", decimal.NewFromInt(100))
	wallet := createTestWallet(t, db, user.ID)
	withdrawal, _ := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(60), wallet.ID)

	if err := svc.ApproveWithdrawal(withdrawal.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.ApproveWithdrawal(withdrawal.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("approval must not move money again, got %s", reloaded.Balance)
	}
}

func TestRejectWithdrawalRefundsHold(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200011", "40011", decimal.NewFromInt(100))
	wallet := createTestWallet(t, db, user.ID)
	withdrawal, _ := svc.RequestWithdrawal(user.ID, decimal.NewFromInt(60), wallet.ID)

	if err := svc.RejectWithdrawal(withdrawal.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("rejection must refund the hold, got %s", reloaded.Balance)
	}

	var refund models.LedgerEntry
	if err := db.Where("user_id = ? AND kind = ?", user.ID, models.EntryWithdrawalRefund).First(&refund).Error; err != nil {
		t.Fatalf("expected a refund ledger entry: %v", err)
	}

	// Rejecting twice refunds once.
	if err := svc.RejectWithdrawal(withdrawal.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("double reject must not double refund, got %s", reloaded.Balance)
	}
}

func TestPendingQueuesOrderOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)

	user := createTestUser(t, db, "241200012", "40012", decimal.NewFromInt(500))
	wallet := createTestWallet(t, db, user.ID)

	svc.SubmitRecharge(user.ID, decimal.NewFromInt(50), "11111111111")
	svc.SubmitRecharge(user.ID, decimal.NewFromInt(60), "22222222222")
	svc.RequestWithdrawal(user.ID, decimal.NewFromInt(30), wallet.ID)

	recharges, err := svc.PendingRecharges()
	if err != nil {
		t.Fatalf("pending recharges failed: %v", err)
	}
	if len(recharges) != 2 || recharges[0].TxnID != "11111111111" {
		t.Errorf("expected 2 pending recharges oldest first, got %v", recharges)
	}

	withdrawals, err := svc.PendingWithdrawals()
	if err != nil {
		t.Fatalf("pending withdrawals failed: %v", err)
	}
	if len(withdrawals) != 1 {
		t.Errorf("expected 1 pending withdrawal, got %d", len(withdrawals))
	}
}
