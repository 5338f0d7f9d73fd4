package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// ReviewService owns the manual review queues for recharges and
// withdrawals. Money only moves when an admin decides, and every
// decision is guarded so it can take effect at most once.
type ReviewService struct {
	db            *gorm.DB
	ledger        *LedgerService
	minDeposit    decimal.Decimal
	minWithdrawal decimal.Decimal
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, ledger *LedgerService, minDeposit, minWithdrawal decimal.Decimal) *ReviewService {
	return &ReviewService{
		db:            db,
		ledger:        ledger,
		minDeposit:    minDeposit,
		minWithdrawal: minWithdrawal,
	}
}

func validTxnID(txnID string) bool {
	if len(txnID) != 11 && len(txnID) != 16 {
		return false
	}
	for _, r := range txnID {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SubmitRecharge files a deposit claim for review. The operator txn id
// is unique across all users; resubmitting the same id is rejected.
// No balance changes until an admin approves.
func (s *ReviewService) SubmitRecharge(userID uint, amount decimal.Decimal, txnID string) (*models.RechargeRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if amount.LessThan(s.minDeposit) {
		return nil, ErrBelowMinimum
	}
	if !validTxnID(txnID) {
		return nil, ErrInvalidTxnID
	}

	var count int64
	if err := s.db.Model(&models.RechargeRecord{}).Where("txn_id = ?", txnID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check txn id: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateTransaction
	}

	record := models.RechargeRecord{
		Reference: uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		TxnID:     txnID,
		Status:    models.StatusPending,
	}

	if err := s.db.Create(&record).Error; err != nil {
		// The unique index is the real duplicate guard; the count above
		// only gives a friendlier fast path.
		return nil, ErrDuplicateTransaction
	}

	return &record, nil
}

// ApproveRecharge marks a pending recharge successful and credits the
// deposit. The status flip is guarded on pending, so a double approve
// credits exactly once.
func (s *ReviewService) ApproveRecharge(rechargeID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.RechargeRecord
		if err := tx.First(&record, rechargeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load recharge: %w", err)
		}

		result := tx.Model(&models.RechargeRecord{}).
			Where("id = ? AND status = ?", rechargeID, models.StatusPending).
			Update("status", models.StatusSuccessful)
		if result.Error != nil {
			return fmt.Errorf("failed to update recharge status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		description := fmt.Sprintf("Recharge approved, txn %s", record.TxnID)
		return s.ledger.Credit(tx, record.UserID, models.EntryDeposit, record.Amount, description)
	})
}

// RejectRecharge marks a pending recharge failed. No money moves.
func (s *ReviewService) RejectRecharge(rechargeID uint) error {
	result := s.db.Model(&models.RechargeRecord{}).
		Where("id = ? AND status = ?", rechargeID, models.StatusPending).
		Update("status", models.StatusFailed)
	if result.Error != nil {
		return fmt.Errorf("failed to update recharge status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.RechargeRecord{}).Where("id = ?", rechargeID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recharge: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyProcessed
	}
	return nil
}

// RequestWithdrawal debits the user up front and queues the request.
// Debiting at request time means a user cannot queue two withdrawals
// against the same money; a rejection refunds the hold.
func (s *ReviewService) RequestWithdrawal(userID uint, amount decimal.Decimal, walletID uint) (*models.Withdrawal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinimum
	}

	var wallet models.Wallet
	if err := s.db.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	var withdrawal models.Withdrawal

	err := s.db.Transaction(func(tx *gorm.DB) error {
		description := fmt.Sprintf("Withdrawal to %s %s", wallet.Carrier, wallet.AccountNumber)
		if err := s.ledger.Debit(tx, userID, models.EntryWithdrawal, amount, description); err != nil {
			return err
		}

		withdrawal = models.Withdrawal{
			UserID:        userID,
			Amount:        amount,
			Status:        models.StatusPending,
			Carrier:       wallet.Carrier,
			HolderName:    wallet.HolderName,
			AccountNumber: wallet.AccountNumber,
			RequestedAt:   time.Now(),
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return fmt.Errorf("failed to create withdrawal: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}

// ApproveWithdrawal marks a pending withdrawal successful. The balance
// was already debited at request time, so approval moves no money.
func (s *ReviewService) ApproveWithdrawal(withdrawalID uint) error {
	result := s.db.Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", withdrawalID, models.StatusPending).
		Update("status", models.StatusSuccessful)
	if result.Error != nil {
		return fmt.Errorf("failed to update withdrawal status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.Withdrawal{}).Where("id = ?", withdrawalID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check withdrawal: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyProcessed
	}
	return nil
}

// RejectWithdrawal marks a pending withdrawal failed and refunds the
// amount that was held at request time.
func (s *ReviewService) RejectWithdrawal(withdrawalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var withdrawal models.Withdrawal
		if err := tx.First(&withdrawal, withdrawalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load withdrawal: %w", err)
		}

		result := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.StatusPending).
			Update("status", models.StatusFailed)
		if result.Error != nil {
			return fmt.Errorf("failed to update withdrawal status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		description := fmt.Sprintf("Refund for rejected withdrawal #%d", withdrawal.ID)
		if err := s.ledger.Credit(tx, withdrawal.UserID, models.EntryWithdrawalRefund, withdrawal.Amount, description); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"withdrawal_id": withdrawal.ID,
			"user_id":       withdrawal.UserID,
			"amount":        withdrawal.Amount.String(),
		}).Info("Withdrawal rejected and refunded")

		return nil
	})
}

// UserRecharges lists a user's recharge records, newest first
func (s *ReviewService) UserRecharges(userID uint) ([]models.RechargeRecord, error) {
	var records []models.RechargeRecord
	if err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list recharges: %w", err)
	}
	return records, nil
}

// UserWithdrawals lists a user's withdrawals, newest first
func (s *ReviewService) UserWithdrawals(userID uint) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	if err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&withdrawals).Error; err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}

// PendingRecharges lists the recharge review queue, oldest first
func (s *ReviewService) PendingRecharges() ([]models.RechargeRecord, error) {
	var records []models.RechargeRecord
	if err := s.db.Where("status = ?", models.StatusPending).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending recharges: %w", err)
	}
	return records, nil
}

// PendingWithdrawals lists the withdrawal review queue, oldest first
func (s *ReviewService) PendingWithdrawals() ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	if err := s.db.Where("status = ?", models.StatusPending).Order("id ASC").Find(&withdrawals).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}
	return withdrawals, nil
}
