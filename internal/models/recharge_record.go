package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RechargeRecord is a deposit claim backed by an externally supplied
// mobile-money transaction id. The txn id is globally unique across all
// records regardless of status; the balance is credited only when an
// admin approves the record.
type RechargeRecord struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Reference string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	TxnID     string          `gorm:"uniqueIndex;size:16;not null" json:"txn_id"`
	Status    string          `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for RechargeRecord model
func (RechargeRecord) TableName() string {
	return "recharge_records"
}
