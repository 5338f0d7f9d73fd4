package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// ReferralHandler handles HTTP requests for the referral tree
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// Summary handles GET /api/referral/summary
func (h *ReferralHandler) Summary(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	summary, err := h.referralService.Summary(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
