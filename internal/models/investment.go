package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentTermDays is the number of daily credits every product pays
// before an investment matures.
const InvestmentTermDays = 30

// Investment represents one product purchase. The product terms are
// snapshotted at purchase time so later catalog edits never change the
// payout of an existing investment.
type Investment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductTier     int             `gorm:"not null" json:"product_tier"`
	Price           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	DailyIncome     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"daily_income"`
	TotalIncome     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_income"`
	TermDays        int             `gorm:"not null;default:30" json:"term_days"`
	CreditsReceived int             `gorm:"not null;default:0" json:"credits_received"`
	PurchasedAt     time.Time       `gorm:"not null;index" json:"purchased_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Investment model
func (Investment) TableName() string {
	return "investments"
}

// Matured reports whether the investment has received every daily credit.
func (i *Investment) Matured() bool {
	return i.CreditsReceived >= i.TermDays
}
