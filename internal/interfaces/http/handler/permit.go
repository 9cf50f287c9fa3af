package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	propertyapp "github.com/propflow/backend/internal/application/property"
	"github.com/propflow/backend/internal/interfaces/http/dto"
)

// PermitHandler handles permit application API endpoints
type PermitHandler struct {
	BaseHandler
	permitService *propertyapp.PermitService
}

// NewPermitHandler creates a new PermitHandler
func NewPermitHandler(permitService *propertyapp.PermitService) *PermitHandler {
	return &PermitHandler{
		permitService: permitService,
	}
}

// CreatePermitRequest represents a request to create a permit application
type CreatePermitRequest struct {
	PropertyAddress string `json:"property_address" binding:"required,max=500"`
	Document        string `json:"document" binding:"required,max=255"`
	LicenceNumber   string `json:"licence_number" binding:"required,max=100"`
	Status          string `json:"status" binding:"required"`
}

// UpdatePermitStatusRequest represents a request to change a permit's status
type UpdatePermitStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /permits
func (h *PermitHandler) Create(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CreatePermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	permit, err := h.permitService.Create(c.Request.Context(), callerID, propertyapp.CreatePermitRequest{
		PropertyAddress: req.PropertyAddress,
		Document:        req.Document,
		LicenceNumber:   req.LicenceNumber,
		Status:          req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, permit)
}

// Get handles GET /permits/:id
func (h *PermitHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a positive integer")
		return
	}

	permit, err := h.permitService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, permit)
}

// UpdateStatus handles PATCH /permits/:id/status
func (h *PermitHandler) UpdateStatus(c *gin.Context) {
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

	var req UpdatePermitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	permit, err := h.permitService.UpdateStatus(c.Request.Context(), callerID, id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, permit)
}

// List handles GET /permits
func (h *PermitHandler) List(c *gin.Context) {
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
	permits, total, err := h.permitService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	h.SuccessWithMeta(c, permits, total, page, pageSize)
}

// Count handles GET /permits/count
func (h *PermitHandler) Count(c *gin.Context) {
	count, err := h.permitService.Count(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

// RegisterRoutes registers all permit routes
func (h *PermitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	permits := rg.Group("/permits")
	{
		permits.POST("", h.Create)
		permits.GET("", h.List)
		permits.GET("/count", h.Count)
		permits.GET("/:id", h.Get)
		permits.PATCH("/:id/status", h.UpdateStatus)
	}
}

// parseID parses the :id path parameter as a positive integer
func parseID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// normalizePage applies the service's pagination defaults for response meta
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
