package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meta-invest/internal/auth"
	"meta-invest/internal/config"
	"meta-invest/internal/database"
	"meta-invest/internal/handlers"
	"meta-invest/internal/jobs"
	"meta-invest/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	db := database.GetDB()
	ledgerService := services.NewLedgerService(db)
	referralService := services.NewReferralService(db, ledgerService)
	investmentService := services.NewInvestmentService(db, ledgerService, referralService)
	reviewService := services.NewReviewService(db, ledgerService, cfg.App.MinDeposit, cfg.App.MinWithdrawal)
	bonusService := services.NewBonusService(db, ledgerService, cfg.App.BonusCodeReward)
	authService := services.NewAuthService(db, ledgerService, cfg.App.SignupBonus)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db, ledgerService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, investmentService, ledgerService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	rechargeHandler := handlers.NewRechargeHandler(reviewService)
	withdrawalHandler := handlers.NewWithdrawalHandler(reviewService)
	referralHandler := handlers.NewReferralHandler(referralService)
	bonusHandler := handlers.NewBonusHandler(bonusService)
	adminHandler := handlers.NewAdminHandler(adminService, reviewService, bonusService)

	// Start the daily income sweep
	accrualJob := jobs.NewAccrualJob(investmentService)
	if err := accrualJob.Start(); err != nil {
		log.Fatalf("Failed to start accrual job: %v", err)
	}

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/admin/login", authHandler.AdminLogin)
	}

	// Public product catalog
	router.GET("/api/products", investmentHandler.ListProducts)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/profile", userHandler.GetProfile)
		api.GET("/ledger", userHandler.GetLedger)

		// Payout wallets
		api.POST("/wallets", userHandler.AddWallet)
		api.GET("/wallets", userHandler.ListWallets)
		api.DELETE("/wallets/:id", userHandler.DeleteWallet)

		// Investments
		api.POST("/investments", investmentHandler.Purchase)
		api.GET("/investments", investmentHandler.ListInvestments)

		// Recharges
		api.POST("/recharges", rechargeHandler.Submit)
		api.GET("/recharges", rechargeHandler.List)

		// Withdrawals
		api.POST("/withdrawals", withdrawalHandler.Request)
		api.GET("/withdrawals", withdrawalHandler.List)

		// Referrals
		api.GET("/referral/summary", referralHandler.Summary)

		// Bonus codes
		api.POST("/bonus/redeem", bonusHandler.Redeem)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AdminAuthMiddleware())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/fund", adminHandler.FundAccount)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/recharges/pending", adminHandler.PendingRecharges)
		admin.POST("/recharges/:id/approve", adminHandler.ApproveRecharge)
		admin.POST("/recharges/:id/reject", adminHandler.RejectRecharge)

		admin.GET("/withdrawals/pending", adminHandler.PendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)

		admin.POST("/bonus-codes", adminHandler.CreateBonusCode)
		admin.GET("/bonus-codes", adminHandler.ListBonusCodes)

		admin.GET("/logs", adminHandler.RecentLogs)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	accrualJob.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
