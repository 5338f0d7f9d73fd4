package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"meta-invest/internal/models"
)

// UserService serves profile and payout-wallet reads and writes.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the user by ID
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// AddWallet registers a mobile-money payout destination for the user
func (s *UserService) AddWallet(userID uint, carrier, holderName, accountNumber string) (*models.Wallet, error) {
	carrier = strings.ToUpper(strings.TrimSpace(carrier))
	if !models.ValidCarrier(carrier) {
		return nil, ErrInvalidCarrier
	}

	holderName = strings.TrimSpace(holderName)
	accountNumber = strings.TrimSpace(accountNumber)
	if holderName == "" || accountNumber == "" {
		return nil, fmt.Errorf("holder name and account number are required")
	}

	wallet := models.Wallet{
		UserID:        userID,
		Carrier:       carrier,
		HolderName:    holderName,
		AccountNumber: accountNumber,
	}
	if err := s.db.Create(&wallet).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return &wallet, nil
}

// ListWallets returns the user's payout wallets
func (s *UserService) ListWallets(userID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// DeleteWallet removes one of the user's payout wallets
func (s *UserService) DeleteWallet(userID, walletID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", walletID, userID).Delete(&models.Wallet{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
