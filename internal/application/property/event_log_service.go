package property

import (
	"context"

	"github.com/propflow/backend/internal/domain/shared"
)

// EventLogService exposes the append-only event log for audit reads. Entries
// come back in append order; the log itself is written only by repositories.
type EventLogService struct {
	eventLog shared.EventLogRepository
}

// NewEventLogService creates a new EventLogService
func NewEventLogService(eventLog shared.EventLogRepository) *EventLogService {
	return &EventLogService{eventLog: eventLog}
}

// EventListFilter narrows audit reads
type EventListFilter struct {
	AggregateType string
	AggregateID   uint64
	EventType     string
	Page          int
	PageSize      int
}

// List retrieves event log entries in append order
func (s *EventLogService) List(ctx context.Context, filter EventListFilter) ([]EventEntryResponse, int64, error) {
	domainFilter := shared.EventLogFilter{
		AggregateType: filter.AggregateType,
		AggregateID:   filter.AggregateID,
		EventType:     filter.EventType,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 50
	}

	entries, total, err := s.eventLog.List(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EventEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToEventEntryResponse(entry)
	}
	return responses, total, nil
}
