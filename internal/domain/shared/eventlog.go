package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventLogEntry is one row of the append-only event log. Entries are written
// in the same transaction as the state change they describe and are never
// deleted; Sequence preserves creation order for audit reads. Dispatch to
// in-process subscribers happens after commit and only marks the entry.
type EventLogEntry struct {
	Sequence      uint64
	EventID       uuid.UUID
	EventType     string
	AggregateType string
	AggregateID   uint64
	Actor         uuid.UUID
	Payload       []byte
	DispatchedAt  *time.Time
	CreatedAt     time.Time
}

// NewEventLogEntry creates a new event log entry for a domain event
func NewEventLogEntry(event DomainEvent, payload []byte) *EventLogEntry {
	return &EventLogEntry{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		Actor:         event.Actor(),
		Payload:       payload,
		CreatedAt:     time.Now(),
	}
}

// IsDispatched returns true if the entry has been delivered to subscribers
func (e *EventLogEntry) IsDispatched() bool {
	return e.DispatchedAt != nil
}

// MarkDispatched records delivery to in-process subscribers
func (e *EventLogEntry) MarkDispatched() {
	now := time.Now()
	e.DispatchedAt = &now
}

// EventLogFilter narrows event log reads. Zero values mean "no filter".
type EventLogFilter struct {
	AggregateType string
	AggregateID   uint64
	EventType     string
	Page          int
	PageSize      int
}

// EventLogRepository defines the interface for the append-only event log
type EventLogRepository interface {
	// Append persists entries; the log is append-only and entries are immutable
	// apart from the dispatch marker
	Append(ctx context.Context, entries ...*EventLogEntry) error
	// FindUndispatched retrieves entries not yet delivered to subscribers,
	// oldest first, up to the specified limit
	FindUndispatched(ctx context.Context, limit int) ([]*EventLogEntry, error)
	// MarkDispatched marks entries as delivered
	MarkDispatched(ctx context.Context, sequences []uint64) error
	// List retrieves entries in append order with optional filtering
	List(ctx context.Context, filter EventLogFilter) ([]*EventLogEntry, int64, error)
}
