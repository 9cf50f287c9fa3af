package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	propertyapp "github.com/propflow/backend/internal/application/property"
	"github.com/propflow/backend/internal/interfaces/http/dto"
)

// EventLogHandler exposes read access to the append-only event log
type EventLogHandler struct {
	BaseHandler
	eventLogService *propertyapp.EventLogService
}

// NewEventLogHandler creates a new EventLogHandler
func NewEventLogHandler(eventLogService *propertyapp.EventLogService) *EventLogHandler {
	return &EventLogHandler{
		eventLogService: eventLogService,
	}
}

// List handles GET /events
func (h *EventLogHandler) List(c *gin.Context) {
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	entries, total, err := h.eventLogService.List(c.Request.Context(), propertyapp.EventListFilter{
		AggregateType: req.AggregateType,
		AggregateID:   req.AggregateID,
		EventType:     req.EventType,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}

// RegisterRoutes registers all event log routes
func (h *EventLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
}
