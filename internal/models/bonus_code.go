package models

import (
	"time"
)

// BonusCode is a shared promotional code with a usage cap. Each user may
// redeem at most one bonus code ever (User.BonusRedeemed).
type BonusCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Uses      int       `gorm:"not null;default:0" json:"uses"`
	MaxUses   int       `gorm:"not null" json:"max_uses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for BonusCode model
func (BonusCode) TableName() string {
	return "bonus_codes"
}
