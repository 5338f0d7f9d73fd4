package main

import (
	"log"
	"os"

	"meta-invest/internal/config"
	"meta-invest/internal/database"
	"meta-invest/internal/services"
)

// Seeds the first staff account so the review console is reachable on a
// fresh database. Usage:
//
//	ADMIN_MOBILE=241234567 ADMIN_PASSWORD=... go run ./scripts/seed
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mobile := os.Getenv("ADMIN_MOBILE")
	password := os.Getenv("ADMIN_PASSWORD")
	if mobile == "" || password == "" {
		log.Fatal("ADMIN_MOBILE and ADMIN_PASSWORD are required")
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	adminService := services.NewAdminService(db, services.NewLedgerService(db))

	admin, err := adminService.CreateAdmin(mobile, password, "SUPER_ADMIN")
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin account created with id %d", admin.ID)
}
