package property

import (
	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePermit = "PermitApplication"

// Event type constants
const (
	EventTypePermitCreated       = "PermitCreated"
	EventTypePermitStatusChanged = "PermitStatusChanged"
)

// PermitCreatedEvent is raised when a new permit application is created
type PermitCreatedEvent struct {
	shared.BaseDomainEvent
	PermitID        uint64    `json:"permit_id"`
	Owner           uuid.UUID `json:"owner"`
	PropertyAddress string    `json:"property_address"`
	Document        string    `json:"document"`
	LicenceNumber   string    `json:"licence_number"`
	Status          Status    `json:"status"`
}

// NewPermitCreatedEvent creates a new PermitCreatedEvent
func NewPermitCreatedEvent(permit *PermitApplication) *PermitCreatedEvent {
	return &PermitCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePermitCreated, AggregateTypePermit, permit.ID, permit.Owner),
		PermitID:        permit.ID,
		Owner:           permit.Owner,
		PropertyAddress: permit.PropertyAddress,
		Document:        permit.Document,
		LicenceNumber:   permit.LicenceNumber,
		Status:          permit.Status,
	}
}

// EventType returns the event type name
func (e *PermitCreatedEvent) EventType() string {
	return EventTypePermitCreated
}

// PermitStatusChangedEvent is raised when an authority changes a permit's status
type PermitStatusChangedEvent struct {
	shared.BaseDomainEvent
	PermitID       uint64    `json:"permit_id"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	AuthorizedBy   uuid.UUID `json:"authorized_by"`
}

// NewPermitStatusChangedEvent creates a new PermitStatusChangedEvent
func NewPermitStatusChangedEvent(permit *PermitApplication, previous Status, authorizedBy uuid.UUID) *PermitStatusChangedEvent {
	return &PermitStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePermitStatusChanged, AggregateTypePermit, permit.ID, authorizedBy),
		PermitID:        permit.ID,
		PreviousStatus:  previous,
		NewStatus:       permit.Status,
		AuthorizedBy:    authorizedBy,
	}
}

// EventType returns the event type name
func (e *PermitStatusChangedEvent) EventType() string {
	return EventTypePermitStatusChanged
}
