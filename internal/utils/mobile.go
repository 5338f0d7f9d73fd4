package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// NormalizeMobile canonicalizes a mobile number before storage or lookup.
// Spaces are stripped and a 10-digit local number loses its leading zero,
// so "024 123 4567" and "241234567" refer to the same account.
func NormalizeMobile(mobile string) string {
	normalized := strings.ReplaceAll(mobile, " ", "")
	if len(normalized) == 10 && strings.HasPrefix(normalized, "0") {
		normalized = normalized[1:]
	}
	return normalized
}

// MaskMobile hides the middle digits of a mobile number for display,
// e.g. "241234567" becomes "24*****67".
func MaskMobile(mobile string) string {
	if len(mobile) < 5 {
		return mobile
	}
	return mobile[:2] + strings.Repeat("*", len(mobile)-4) + mobile[len(mobile)-2:]
}

// GenerateReferralCode creates a random 5-digit referral code
func GenerateReferralCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate referral code: %w", err)
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}
