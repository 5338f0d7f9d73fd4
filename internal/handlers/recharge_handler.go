package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// RechargeHandler handles HTTP requests for deposit claims
type RechargeHandler struct {
	reviewService *services.ReviewService
}

// NewRechargeHandler creates a new recharge handler
func NewRechargeHandler(reviewService *services.ReviewService) *RechargeHandler {
	return &RechargeHandler{
		reviewService: reviewService,
	}
}

// SubmitRechargeRequest is the payload for POST /api/recharges
type SubmitRechargeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	TxnID  string          `json:"txn_id" binding:"required"`
}

// Submit handles POST /api/recharges
func (h *RechargeHandler) Submit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SubmitRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.reviewService.SubmitRecharge(userID, req.Amount, req.TxnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recharge": record})
}

// List handles GET /api/recharges
func (h *RechargeHandler) List(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	records, err := h.reviewService.UserRecharges(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recharges": records,
		"total":     len(records),
	})
}
