package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meta-invest/internal/auth"
	"meta-invest/internal/services"
)

// InvestmentHandler handles HTTP requests for the product catalog and
// plan purchases
type InvestmentHandler struct {
	investmentService *services.InvestmentService
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentService *services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// PurchaseRequest is the payload for POST /api/investments
type PurchaseRequest struct {
	Tier int `json:"tier" binding:"required"`
}

// ListProducts handles GET /api/products
func (h *InvestmentHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": services.Products()})
}

// Purchase handles POST /api/investments
func (h *InvestmentHandler) Purchase(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investment, err := h.investmentService.Purchase(userID, req.Tier)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// ListInvestments handles GET /api/investments. Accrual runs first so
// credit counts in the response are current.
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.investmentService.AccrueUser(userID); err != nil {
		respondError(c, err)
		return
	}

	investments, err := h.investmentService.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments": investments,
		"total":       len(investments),
	})
}
