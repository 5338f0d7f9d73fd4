package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// InvestmentService handles plan purchases and daily income accrual.
//
// Accrual is derived from timestamps, not from a counter that something
// has to remember to bump: the number of credits an investment has
// earned is a pure function of its purchase time, so accrual can run
// lazily on reads, from the scheduler, or both, and always converges to
// the same state.
type InvestmentService struct {
	db        *gorm.DB
	ledger    *LedgerService
	referrals *ReferralService
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(db *gorm.DB, ledger *LedgerService, referrals *ReferralService) *InvestmentService {
	return &InvestmentService{db: db, ledger: ledger, referrals: referrals}
}

// Purchase buys a plan tier for the user. The debit, the investment row
// and the upline commissions commit or roll back together.
func (s *InvestmentService) Purchase(userID uint, tier int) (*models.Investment, error) {
	product, err := ProductByTier(tier)
	if err != nil {
		return nil, err
	}

	var investment models.Investment

	err = s.db.Transaction(func(tx *gorm.DB) error {
		description := fmt.Sprintf("Purchase of %s", product.Name)
		if err := s.ledger.Debit(tx, userID, models.EntryPurchase, product.Price, description); err != nil {
			return err
		}

		investment = models.Investment{
			UserID:      userID,
			ProductTier: product.Tier,
			Price:       product.Price,
			DailyIncome: product.DailyIncome,
			TotalIncome: product.TotalIncome,
			TermDays:    product.TermDays,
			PurchasedAt: time.Now(),
		}
		if err := tx.Create(&investment).Error; err != nil {
			return fmt.Errorf("failed to create investment: %w", err)
		}

		return s.referrals.PayCommissions(tx, userID, product.Price)
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"tier":    tier,
		"price":   product.Price.String(),
	}).Info("Investment purchased")

	return &investment, nil
}

// eligibleCredits is the number of daily payouts the investment has
// earned by now: one per full 24h since purchase, capped at the term.
func eligibleCredits(inv *models.Investment, now time.Time) int {
	days := int(now.Sub(inv.PurchasedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days > inv.TermDays {
		days = inv.TermDays
	}
	return days
}

// AccrueUser pays out any daily income the user's investments have
// earned but not yet received. Idempotent: calling it twice in the
// same day credits nothing the second time.
func (s *InvestmentService) AccrueUser(userID uint) error {
	var investments []models.Investment
	if err := s.db.Where("user_id = ? AND credits_received < term_days", userID).Find(&investments).Error; err != nil {
		return fmt.Errorf("failed to load investments: %w", err)
	}

	for i := range investments {
		if err := s.accrueOne(&investments[i]); err != nil {
			return err
		}
	}

	return nil
}

// accrueOne settles a single investment up to its eligible credit count.
// The credit counter is advanced with a compare-and-swap so a lazy read
// and the scheduler racing on the same row pay out exactly once.
func (s *InvestmentService) accrueOne(inv *models.Investment) error {
	eligible := eligibleCredits(inv, time.Now())
	if eligible <= inv.CreditsReceived {
		return nil
	}

	delta := eligible - inv.CreditsReceived
	payout := inv.DailyIncome.Mul(decimal.NewFromInt(int64(delta)))

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Investment{}).
			Where("id = ? AND credits_received = ?", inv.ID, inv.CreditsReceived).
			Update("credits_received", eligible)
		if result.Error != nil {
			return fmt.Errorf("failed to advance credits: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Someone else accrued this investment first.
			return nil
		}

		description := fmt.Sprintf("Daily income x%d for VIP %d", delta, inv.ProductTier)
		if err := s.ledger.Credit(tx, inv.UserID, models.EntryDailyIncome, payout, description); err != nil {
			return err
		}

		inv.CreditsReceived = eligible
		return nil
	})
}

// AccrueAll sweeps every unfinished investment. Returns the number of
// investments that received a payout. Failures on individual rows are
// logged and skipped so one bad row cannot stall the sweep.
func (s *InvestmentService) AccrueAll() (int, error) {
	var investments []models.Investment
	if err := s.db.Where("credits_received < term_days").Find(&investments).Error; err != nil {
		return 0, fmt.Errorf("failed to load investments: %w", err)
	}

	accrued := 0
	for i := range investments {
		before := investments[i].CreditsReceived
		if err := s.accrueOne(&investments[i]); err != nil {
			logrus.WithError(err).WithField("investment_id", investments[i].ID).Warn("accrual failed for investment")
			continue
		}
		if investments[i].CreditsReceived > before {
			accrued++
		}
	}

	return accrued, nil
}

// ListByUser returns the user's investments, newest first
func (s *InvestmentService) ListByUser(userID uint) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}
