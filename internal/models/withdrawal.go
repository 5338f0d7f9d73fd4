package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Review states shared by withdrawals and recharge records.
const (
	StatusPending    = "pending"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
)

// Withdrawal is a debit request awaiting manual review. The balance is
// debited when the request is created, not when it is approved; a
// rejected withdrawal refunds the debit. The destination wallet is
// snapshotted so later wallet edits don't redirect a pending payout.
type Withdrawal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;not null;default:pending;index" json:"status"`
	Carrier       string          `gorm:"size:20;not null" json:"carrier"`
	HolderName    string          `gorm:"size:100;not null" json:"holder_name"`
	AccountNumber string          `gorm:"size:20;not null" json:"account_number"`
	RequestedAt   time.Time       `gorm:"not null;index" json:"requested_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Withdrawal model
func (Withdrawal) TableName() string {
	return "withdrawals"
}
