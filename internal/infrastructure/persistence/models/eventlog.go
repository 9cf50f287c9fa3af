package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propflow/backend/internal/domain/shared"
)

// EventLogEntryModel is the persistence model for the append-only event log.
// Sequence is database-assigned and preserves append order. Rows are never
// deleted; DispatchedAt is the only mutable column.
type EventLogEntryModel struct {
	Sequence      uint64     `gorm:"primaryKey;autoIncrement"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string     `gorm:"type:varchar(255);not null;index"`
	AggregateType string     `gorm:"type:varchar(100);not null;index:idx_event_log_aggregate,priority:1"`
	AggregateID   uint64     `gorm:"not null;index:idx_event_log_aggregate,priority:2"`
	Actor         uuid.UUID  `gorm:"type:uuid;not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	DispatchedAt  *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EventLogEntryModel) TableName() string {
	return "event_log"
}

// ToDomain converts the persistence model to a domain EventLogEntry
func (m *EventLogEntryModel) ToDomain() *shared.EventLogEntry {
	return &shared.EventLogEntry{
		Sequence:      m.Sequence,
		EventID:       m.EventID,
		EventType:     m.EventType,
		AggregateType: m.AggregateType,
		AggregateID:   m.AggregateID,
		Actor:         m.Actor,
		Payload:       m.Payload,
		DispatchedAt:  m.DispatchedAt,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain EventLogEntry
func (m *EventLogEntryModel) FromDomain(e *shared.EventLogEntry) {
	m.Sequence = e.Sequence
	m.EventID = e.EventID
	m.EventType = e.EventType
	m.AggregateType = e.AggregateType
	m.AggregateID = e.AggregateID
	m.Actor = e.Actor
	m.Payload = e.Payload
	m.DispatchedAt = e.DispatchedAt
	m.CreatedAt = e.CreatedAt
}

// EventLogEntryModelFromDomain creates a new persistence model from a domain EventLogEntry
func EventLogEntryModelFromDomain(e *shared.EventLogEntry) *EventLogEntryModel {
	m := &EventLogEntryModel{}
	m.FromDomain(e)
	return m
}
