package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meta-invest/internal/models"
	"meta-invest/internal/utils"
)

// AdminService backs the staff console: user management, manual
// funding and the audit log.
type AdminService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, ledger *LedgerService) *AdminService {
	return &AdminService{db: db, ledger: ledger}
}

// GetAllUsers returns users page by page, newest first. A non-empty
// mobile filters by prefix match on the normalized number.
func (s *AdminService) GetAllUsers(page, pageSize int, mobile string) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	query := s.db.Model(&models.User{})
	if mobile != "" {
		query = query.Where("mobile LIKE ?", utils.NormalizeMobile(mobile)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// FundAccount credits a user manually and records who did it
func (s *AdminService) FundAccount(adminID, userID uint, amount decimal.Decimal, note string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		description := "Manual funding"
		if note != "" {
			description = fmt.Sprintf("Manual funding: %s", note)
		}
		return s.ledger.Credit(tx, userID, models.EntryAdminFunding, amount, description)
	})
	if err != nil {
		return err
	}

	s.LogAdminAction(adminID, "fund_account", "user", &userID, models.JSONB{
		"amount": amount.String(),
		"note":   note,
	})
	return nil
}

// DeleteUser removes a user and everything hanging off the account.
// Ledger entries go too; the audit log keeps the admin-side record.
func (s *AdminService) DeleteUser(adminID, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		cleanups := []interface{}{
			&models.Investment{},
			&models.Wallet{},
			&models.Withdrawal{},
			&models.RechargeRecord{},
			&models.LedgerEntry{},
		}
		for _, model := range cleanups {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete %T records: %w", model, err)
			}
		}

		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogAdminAction(adminID, "delete_user", "user", &userID, nil)
	return nil
}

// CreateAdmin registers a staff account with a bcrypt-hashed password
func (s *AdminService) CreateAdmin(mobile, password, role string) (*models.AdminUser, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.AdminUser{
		Mobile:   mobile,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}

// LogAdminAction appends to the audit trail. Failures are logged and
// swallowed; an audit write must never fail the action it describes.
func (s *AdminService) LogAdminAction(adminID uint, action, resourceType string, resourceID *uint, details models.JSONB) {
	entry := models.AdminLog{
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithError(err).Warn("failed to write admin log")
	}
}

// RecentLogs returns the latest audit entries
func (s *AdminService) RecentLogs(limit int) ([]models.AdminLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []models.AdminLog
	if err := s.db.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin logs: %w", err)
	}
	return logs, nil
}
