package models

import (
	"time"
)

// Mobile-money carriers accepted as withdrawal destinations.
const (
	CarrierMTN        = "MTN"
	CarrierTelecel    = "TELECEL"
	CarrierAirtelTigo = "AIRTELTIGO"
)

// Wallet is a mobile-money withdrawal destination owned by a user.
type Wallet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Carrier       string    `gorm:"size:20;not null" json:"carrier"`
	HolderName    string    `gorm:"size:100;not null" json:"holder_name"`
	AccountNumber string    `gorm:"size:20;not null" json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for Wallet model
func (Wallet) TableName() string {
	return "wallets"
}

// ValidCarrier reports whether the given carrier is a known mobile-money network.
func ValidCarrier(carrier string) bool {
	switch carrier {
	case CarrierMTN, CarrierTelecel, CarrierAirtelTigo:
		return true
	}
	return false
}
