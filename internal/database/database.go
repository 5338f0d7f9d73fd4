package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meta-invest/internal/models"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	// Account and ledger models first
	coreModels := []interface{}{
		&models.User{},
		&models.LedgerEntry{},
		&models.Wallet{},
	}

	for _, model := range coreModels {
		if err := DB.AutoMigrate(model); err != nil {
			logrus.Warnf("migration issue for %T: %v", model, err)
		}
	}

	// Investment and review-queue models
	moneyModels := []interface{}{
		&models.Investment{},
		&models.Withdrawal{},
		&models.RechargeRecord{},
		&models.BonusCode{},
	}

	for _, model := range moneyModels {
		if err := DB.AutoMigrate(model); err != nil {
			logrus.Warnf("migration issue for %T: %v", model, err)
		}
	}

	// Admin models
	adminModels := []interface{}{
		&models.AdminUser{},
		&models.AdminLog{},
	}

	for _, model := range adminModels {
		if err := DB.AutoMigrate(model); err != nil {
			logrus.Warnf("migration issue for %T: %v", model, err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
