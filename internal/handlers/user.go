package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// UserHandler handles HTTP requests for the profile and payout wallets
type UserHandler struct {
	userService       *services.UserService
	investmentService *services.InvestmentService
	ledgerService     *services.LedgerService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, investmentService *services.InvestmentService, ledgerService *services.LedgerService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		investmentService: investmentService,
		ledgerService:     ledgerService,
	}
}

// AddWalletRequest is the payload for POST /api/wallets
type AddWalletRequest struct {
	Carrier       string `json:"carrier" binding:"required"`
	HolderName    string `json:"holder_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// GetProfile handles GET /api/profile. Pending daily income is settled
// before the balance is read so the user always sees an up-to-date
// figure, whether or not the nightly sweep has run.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.investmentService.AccrueUser(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("lazy accrual failed")
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetLedger handles GET /api/ledger
func (h *UserHandler) GetLedger(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	kind := c.Query("kind")
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	entries, err := h.ledgerService.Entries(userID, kind, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// AddWallet handles POST /api/wallets
func (h *UserHandler) AddWallet(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req AddWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.userService.AddWallet(userID, req.Carrier, req.HolderName, req.AccountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets handles GET /api/wallets
func (h *UserHandler) ListWallets(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	wallets, err := h.userService.ListWallets(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallets": wallets,
		"total":   len(wallets),
	})
}

// DeleteWallet handles DELETE /api/wallets/:id
func (h *UserHandler) DeleteWallet(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	walletID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet id"})
		return
	}

	if err := h.userService.DeleteWallet(userID, uint(walletID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}
