package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// BonusService redeems promotional codes. A user may redeem one code
// ever; a code pays out at most its configured number of uses.
type BonusService struct {
	db     *gorm.DB
	ledger *LedgerService
	reward decimal.Decimal
}

// NewBonusService creates a new bonus service
func NewBonusService(db *gorm.DB, ledger *LedgerService, reward decimal.Decimal) *BonusService {
	return &BonusService{db: db, ledger: ledger, reward: reward}
}

// Redeem claims a bonus code for the user. Both guards are plain
// conditional UPDATEs inside one transaction: the user's one-redemption
// flag and the code's use counter each flip at most once, so concurrent
// redeemers of the last slot cannot both win.
func (s *BonusService) Redeem(userID uint, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrInvalidOrExhausted
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND bonus_redeemed = ?", userID, false).
			Update("bonus_redeemed", true)
		if result.Error != nil {
			return fmt.Errorf("failed to flag redemption: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check user: %w", err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyRedeemed
		}

		result = tx.Model(&models.BonusCode{}).
			Where("code = ? AND uses < max_uses", code).
			Update("uses", gorm.Expr("uses + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to consume bonus code: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Rolls back the redeemed flag too.
			return ErrInvalidOrExhausted
		}

		description := fmt.Sprintf("Bonus code %s", code)
		return s.ledger.Credit(tx, userID, models.EntryBonusCode, s.reward, description)
	})
}

// CreateCode registers a new bonus code with a use limit
func (s *BonusService) CreateCode(code string, maxUses int) (*models.BonusCode, error) {
	code = strings.TrimSpace(code)
	if code == "" || maxUses <= 0 {
		return nil, fmt.Errorf("code and max uses are required")
	}

	bonusCode := models.BonusCode{
		Code:    code,
		MaxUses: maxUses,
	}
	if err := s.db.Create(&bonusCode).Error; err != nil {
		return nil, fmt.Errorf("failed to create bonus code: %w", err)
	}
	return &bonusCode, nil
}

// ListCodes returns all bonus codes with their consumption state
func (s *BonusService) ListCodes() ([]models.BonusCode, error) {
	var codes []models.BonusCode
	if err := s.db.Order("id DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list bonus codes: %w", err)
	}
	return codes, nil
}
