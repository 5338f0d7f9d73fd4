package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meta-invest/internal/auth"
	"meta-invest/internal/models"
	"meta-invest/internal/utils"
)

// AuthService handles signup and login for users and admins.
type AuthService struct {
	db          *gorm.DB
	ledger      *LedgerService
	signupBonus decimal.Decimal
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, ledger *LedgerService, signupBonus decimal.Decimal) *AuthService {
	return &AuthService{db: db, ledger: ledger, signupBonus: signupBonus}
}

// Register creates a user account, grants the signup bonus and returns
// a session token. The referral code is stored as given even when no
// account owns it yet; commission walks simply stop at a dead code.
func (s *AuthService) Register(mobile, password, referralCode string) (*models.User, string, error) {
	mobile = utils.NormalizeMobile(mobile)
	if mobile == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("mobile = ?", mobile).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check mobile: %w", err)
	}
	if count > 0 {
		return nil, "", ErrMobileTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.uniqueReferralCode()
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Mobile:       mobile,
		Password:     string(hashed),
		Balance:      decimal.Zero,
		ReferralCode: code,
	}

	referralCode = strings.TrimSpace(referralCode)
	if referralCode != "" {
		user.ReferredBy = &referralCode
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if s.signupBonus.IsPositive() {
			return s.ledger.Credit(tx, user.ID, models.EntrySignupBonus, s.signupBonus, "Welcome bonus")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Mobile, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"mobile":  utils.MaskMobile(user.Mobile),
	}).Info("User registered")

	// Reload so the caller sees the post-bonus balance.
	if err := s.db.First(&user, user.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload user: %w", err)
	}

	return &user, token, nil
}

func (s *AuthService) uniqueReferralCode() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to find a free referral code")
}

// Login authenticates a user by mobile and password
func (s *AuthService) Login(mobile, password string) (*models.User, string, error) {
	mobile = utils.NormalizeMobile(mobile)

	var user models.User
	if err := s.db.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Mobile, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// AdminLogin authenticates a staff account
func (s *AuthService) AdminLogin(mobile, password string) (*models.AdminUser, string, error) {
	mobile = utils.NormalizeMobile(mobile)

	var admin models.AdminUser
	if err := s.db.Where("mobile = ?", mobile).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID, admin.Mobile, auth.RoleAdmin)
	if err != nil {
		return nil, "", err
	}

	logrus.WithField("admin_id", admin.ID).Info("Admin logged in")

	return &admin, token, nil
}
