package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// LedgerService is the single writer for user balances. Every balance
// mutation goes through Credit or Debit so that each movement leaves a
// ledger entry with the balance snapshot after the change.
//
// Methods take the db handle as a parameter so callers can pass an open
// transaction and make the balance change atomic with their own writes.
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new ledger service
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Credit adds amount to the user's balance and records a ledger entry.
// The entry amount is stored positive.
func (s *LedgerService) Credit(tx *gorm.DB, userID uint, kind string, amount decimal.Decimal, description string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))

	if result.Error != nil {
		return fmt.Errorf("failed to credit balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return s.record(tx, userID, kind, amount, description)
}

// Debit subtracts amount from the user's balance. The UPDATE is guarded
// by the balance itself, so two concurrent debits can never drive the
// balance negative. The entry amount is stored negative.
func (s *LedgerService) Debit(tx *gorm.DB, userID uint, kind string, amount decimal.Decimal, description string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	result := tx.Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return fmt.Errorf("failed to debit balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientBalance
	}

	return s.record(tx, userID, kind, amount.Neg(), description)
}

func (s *LedgerService) record(tx *gorm.DB, userID uint, kind string, amount decimal.Decimal, description string) error {
	var user models.User
	if err := tx.Select("balance").First(&user, userID).Error; err != nil {
		return fmt.Errorf("failed to read balance after update: %w", err)
	}

	entry := models.LedgerEntry{
		Reference:    uuid.New().String(),
		UserID:       userID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: user.Balance,
		Description:  description,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

// Entries returns the most recent ledger entries for a user, optionally
// filtered by kind. limit <= 0 means no limit.
func (s *LedgerService) Entries(userID uint, kind string, limit int) ([]models.LedgerEntry, error) {
	query := s.db.Where("user_id = ?", userID).Order("id DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.LedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	return entries, nil
}
