package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"meta-invest/internal/models"
)

func TestAddWalletValidatesCarrier(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "241500001", "70001", decimal.Zero)

	if _, err := svc.AddWallet(user.ID, "VODAFONE", "Ama Mensah", "0241234567"); !errors.Is(err, ErrInvalidCarrier) {
		t.Errorf("expected ErrInvalidCarrier, got %v", err)
	}

	// Carrier matching is case-insensitive.
	wallet, err := svc.AddWallet(user.ID, "mtn", "Ama Mensah", "0241234567")
	if err != nil {
		t.Fatalf("add wallet failed: %v", err)
	}
	if wallet.Carrier != models.CarrierMTN {
		t.Errorf("expected carrier stored uppercase, got %s", wallet.Carrier)
	}
}

func TestDeleteWalletScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	owner := createTestUser(t, db, "241500002", "70002", decimal.Zero)
	stranger := createTestUser(t, db, "241500003", "70003", decimal.Zero)

	wallet, err := svc.AddWallet(owner.ID, models.CarrierTelecel, "Kofi Owusu", "0501234567")
	if err != nil {
		t.Fatalf("add wallet failed: %v", err)
	}

	if err := svc.DeleteWallet(stranger.ID, wallet.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger must not delete the wallet, got %v", err)
	}
	if err := svc.DeleteWallet(owner.ID, wallet.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	wallets, _ := svc.ListWallets(owner.ID)
	if len(wallets) != 0 {
		t.Errorf("expected no wallets left, got %d", len(wallets))
	}
}
