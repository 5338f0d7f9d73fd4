package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// Commission rates per referral level, applied to the purchase price.
var commissionRates = []decimal.Decimal{
	decimal.NewFromFloat(0.05),
	decimal.NewFromFloat(0.01),
	decimal.NewFromFloat(0.01),
}

// ReferralService pays upline commissions and reports referral trees.
type ReferralService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewReferralService creates a new referral service
func NewReferralService(db *gorm.DB, ledger *LedgerService) *ReferralService {
	return &ReferralService{db: db, ledger: ledger}
}

// PayCommissions walks up the referral chain from the buyer and credits
// each level its cut of the purchase price. A dangling referral code
// (the referrer was deleted, or the code never existed) ends the walk
// silently; the purchase itself is unaffected.
//
// Runs inside the caller's transaction so commissions land atomically
// with the purchase.
func (s *ReferralService) PayCommissions(tx *gorm.DB, buyerID uint, price decimal.Decimal) error {
	var buyer models.User
	if err := tx.First(&buyer, buyerID).Error; err != nil {
		return fmt.Errorf("failed to load buyer: %w", err)
	}

	code := buyer.ReferredBy
	for level, rate := range commissionRates {
		if code == nil || *code == "" {
			break
		}

		var referrer models.User
		err := tx.Where("referral_code = ?", *code).First(&referrer).Error
		if err == gorm.ErrRecordNotFound {
			logrus.Debugf("referral code %s has no owner, stopping commission walk", *code)
			break
		}
		if err != nil {
			return fmt.Errorf("failed to look up referrer: %w", err)
		}

		commission := price.Mul(rate).Round(2)
		if commission.IsPositive() {
			description := fmt.Sprintf("Level %d commission on VIP purchase by user %d", level+1, buyerID)
			if err := s.ledger.Credit(tx, referrer.ID, models.EntryReferralCommission, commission, description); err != nil {
				return fmt.Errorf("failed to pay level %d commission: %w", level+1, err)
			}

			if err := tx.Model(&models.User{}).
				Where("id = ?", referrer.ID).
				Update("referral_income", gorm.Expr("referral_income + ?", commission)).Error; err != nil {
				return fmt.Errorf("failed to update referral income: %w", err)
			}
		}

		code = referrer.ReferredBy
	}

	return nil
}

// LevelCount holds the team size at one referral level
type LevelCount struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// ReferralSummary is the downline view for one user
type ReferralSummary struct {
	ReferralCode   string               `json:"referral_code"`
	Levels         []LevelCount         `json:"levels"`
	TotalTeam      int64                `json:"total_team"`
	ReferralIncome decimal.Decimal      `json:"referral_income"`
	RecentPayouts  []models.LedgerEntry `json:"recent_payouts"`
}

// Summary counts the user's downline three levels deep and returns the
// lifetime referral income alongside the latest commission entries.
func (s *ReferralService) Summary(userID uint) (*ReferralSummary, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	summary := &ReferralSummary{
		ReferralCode:   user.ReferralCode,
		ReferralIncome: user.ReferralIncome,
	}

	codes := []string{user.ReferralCode}
	for level := 1; level <= len(commissionRates); level++ {
		var count int64
		if err := s.db.Model(&models.User{}).Where("referred_by IN ?", codes).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count level %d referrals: %w", level, err)
		}
		summary.Levels = append(summary.Levels, LevelCount{Level: level, Count: count})
		summary.TotalTeam += count

		if level == len(commissionRates) {
			break
		}

		var nextCodes []string
		if err := s.db.Model(&models.User{}).
			Where("referred_by IN ?", codes).
			Pluck("referral_code", &nextCodes).Error; err != nil {
			return nil, fmt.Errorf("failed to collect level %d codes: %w", level, err)
		}
		if len(nextCodes) == 0 {
			for l := level + 1; l <= len(commissionRates); l++ {
				summary.Levels = append(summary.Levels, LevelCount{Level: l, Count: 0})
			}
			break
		}
		codes = nextCodes
	}

	payouts, err := s.ledger.Entries(userID, models.EntryReferralCommission, 20)
	if err != nil {
		return nil, err
	}
	summary.RecentPayouts = payouts

	return summary, nil
}
