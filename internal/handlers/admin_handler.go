package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meta-invest/internal/auth"
	"meta-invest/internal/models"
	"meta-invest/internal/services"
)

// AdminHandler handles HTTP requests for the staff console
type AdminHandler struct {
	adminService  *services.AdminService
	reviewService *services.ReviewService
	bonusService  *services.BonusService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, reviewService *services.ReviewService, bonusService *services.BonusService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		reviewService: reviewService,
		bonusService:  bonusService,
	}
}

// FundAccountRequest is the payload for POST /api/admin/users/:id/fund
type FundAccountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

// CreateBonusCodeRequest is the payload for POST /api/admin/bonus-codes
type CreateBonusCodeRequest struct {
	Code    string `json:"code" binding:"required"`
	MaxUses int    `json:"max_uses" binding:"required,min=1"`
}

func adminID(c *gin.Context) uint {
	id, _ := auth.GetUserID(c)
	return id
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	mobile := c.Query("mobile")

	users, total, err := h.adminService.GetAllUsers(page, pageSize, mobile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
	})
}

// FundAccount handles POST /api/admin/users/:id/fund
func (h *AdminHandler) FundAccount(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	var req FundAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.FundAccount(adminID(c), userID, req.Amount, req.Note); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account funded"})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(adminID(c), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// PendingRecharges handles GET /api/admin/recharges/pending
func (h *AdminHandler) PendingRecharges(c *gin.Context) {
	records, err := h.reviewService.PendingRecharges()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recharges": records,
		"total":     len(records),
	})
}

// ApproveRecharge handles POST /api/admin/recharges/:id/approve
func (h *AdminHandler) ApproveRecharge(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.ApproveRecharge(id); err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(adminID(c), "approve_recharge", "recharge", &id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "recharge approved"})
}

// RejectRecharge handles POST /api/admin/recharges/:id/reject
func (h *AdminHandler) RejectRecharge(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.RejectRecharge(id); err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(adminID(c), "reject_recharge", "recharge", &id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "recharge rejected"})
}

// PendingWithdrawals handles GET /api/admin/withdrawals/pending
func (h *AdminHandler) PendingWithdrawals(c *gin.Context) {
	withdrawals, err := h.reviewService.PendingWithdrawals()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"withdrawals": withdrawals,
		"total":       len(withdrawals),
	})
}

// ApproveWithdrawal handles POST /api/admin/withdrawals/:id/approve
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.ApproveWithdrawal(id); err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(adminID(c), "approve_withdrawal", "withdrawal", &id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal approved"})
}

// RejectWithdrawal handles POST /api/admin/withdrawals/:id/reject
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.RejectWithdrawal(id); err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(adminID(c), "reject_withdrawal", "withdrawal", &id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal rejected and refunded"})
}

// CreateBonusCode handles POST /api/admin/bonus-codes
func (h *AdminHandler) CreateBonusCode(c *gin.Context) {
	var req CreateBonusCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.bonusService.CreateCode(req.Code, req.MaxUses)
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(adminID(c), "create_bonus_code", "bonus_code", &code.ID, models.JSONB{
		"code":     code.Code,
		"max_uses": code.MaxUses,
	})
	c.JSON(http.StatusCreated, gin.H{"bonus_code": code})
}

// ListBonusCodes handles GET /api/admin/bonus-codes
func (h *AdminHandler) ListBonusCodes(c *gin.Context) {
	codes, err := h.bonusService.ListCodes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bonus_codes": codes,
		"total":       len(codes),
	})
}

// RecentLogs handles GET /api/admin/logs
func (h *AdminHandler) RecentLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.adminService.RecentLogs(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}
