package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	propertyapp "github.com/propflow/backend/internal/application/property"
	"github.com/propflow/backend/internal/interfaces/http/dto"
)

// LoanHandler handles loan application API endpoints
type LoanHandler struct {
	BaseHandler
	loanService *propertyapp.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *propertyapp.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// CreateLoanRequest represents a request to create a loan application
type CreateLoanRequest struct {
	FullName        string          `json:"full_name" binding:"required,max=200"`
	PropertyAddress string          `json:"property_address" binding:"required,max=500"`
	AnnualIncome    decimal.Decimal `json:"annual_income" binding:"required"`
	LoanAmount      decimal.Decimal `json:"loan_amount" binding:"required"`
	Status          string          `json:"status" binding:"required"`
}

// UpdateLoanStatusRequest represents a request to change a loan's status
type UpdateLoanStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /loans
func (h *LoanHandler) Create(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	loan, err := h.loanService.Create(c.Request.Context(), callerID, propertyapp.CreateLoanRequest{
		FullName:        req.FullName,
		PropertyAddress: req.PropertyAddress,
		AnnualIncome:    req.AnnualIncome,
		LoanAmount:      req.LoanAmount,
		Status:          req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, loan)
}

// Get handles GET /loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a positive integer")
		return
	}

	loan, err := h.loanService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, loan)
}

// UpdateStatus handles PATCH /loans/:id/status
func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a positive integer")
		return
	}

	var req UpdateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	loan, err := h.loanService.UpdateStatus(c.Request.Context(), callerID, id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, loan)
}

// List handles GET /loans
func (h *LoanHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	filter := propertyapp.ListFilter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	loans, total, err := h.loanService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	h.SuccessWithMeta(c, loans, total, page, pageSize)
}

// Count handles GET /loans/count
func (h *LoanHandler) Count(c *gin.Context) {
	count, err := h.loanService.Count(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

// RegisterRoutes registers all loan routes
func (h *LoanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loans := rg.Group("/loans")
	{
		loans.POST("", h.Create)
		loans.GET("", h.List)
		loans.GET("/count", h.Count)
		loans.GET("/:id", h.Get)
		loans.PATCH("/:id/status", h.UpdateStatus)
	}
}
