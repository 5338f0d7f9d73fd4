package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// WithdrawalHandler handles HTTP requests for withdrawal requests
type WithdrawalHandler struct {
	reviewService *services.ReviewService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(reviewService *services.ReviewService) *WithdrawalHandler {
	return &WithdrawalHandler{
		reviewService: reviewService,
	}
}

// RequestWithdrawalRequest is the payload for POST /api/withdrawals
type RequestWithdrawalRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	WalletID uint            `json:"wallet_id" binding:"required"`
}

// Request handles POST /api/withdrawals
func (h *WithdrawalHandler) Request(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.reviewService.RequestWithdrawal(userID, req.Amount, req.WalletID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// List handles GET /api/withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	withdrawals, err := h.reviewService.UserWithdrawals(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"withdrawals": withdrawals,
		"total":       len(withdrawals),
	})
}
