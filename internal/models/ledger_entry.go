package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry kinds. Every balance movement carries one of these.
const (
	EntrySignupBonus        = "signup_bonus"
	EntryDeposit            = "deposit"
	EntryWithdrawal         = "withdrawal"
	EntryWithdrawalRefund   = "withdrawal_refund"
	EntryPurchase           = "purchase"
	EntryDailyIncome        = "daily_income"
	EntryReferralCommission = "referral_commission"
	EntryBonusCode          = "bonus_code"
	EntryAdminFunding       = "admin_funding"
)

// LedgerEntry records a single balance movement. BalanceAfter is the
// user's balance as observed inside the transaction that applied the
// movement, so the entry stream replays to the current balance.
type LedgerEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Reference    string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Kind         string          `gorm:"size:32;not null;index" json:"kind"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
