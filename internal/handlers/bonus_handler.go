package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// BonusHandler handles HTTP requests for bonus code redemption
type BonusHandler struct {
	bonusService *services.BonusService
}

// NewBonusHandler creates a new bonus handler
func NewBonusHandler(bonusService *services.BonusService) *BonusHandler {
	return &BonusHandler{
		bonusService: bonusService,
	}
}

// RedeemRequest is the payload for POST /api/bonus/redeem
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// Redeem handles POST /api/bonus/redeem
func (h *BonusHandler) Redeem(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bonusService.Redeem(userID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bonus redeemed"})
}
