package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder, identified by their normalized
// mobile number. Balance is only ever mutated through the ledger.
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Mobile         string          `gorm:"uniqueIndex;size:15;not null" json:"mobile"`
	Password       string          `gorm:"size:100;not null" json:"-"`
	Balance        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	ReferralCode   string          `gorm:"uniqueIndex;size:5;not null" json:"referral_code"`
	ReferredBy     *string         `gorm:"size:5;index" json:"referred_by,omitempty"`
	BonusRedeemed  bool            `gorm:"default:false" json:"bonus_redeemed"`
	ReferralIncome decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"referral_income"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
