package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/shared"
)

// PermitApplication represents an application for regulatory approval of a
// property development. It is an aggregate root. IDs are dense positive
// integers assigned by the repository when the record is first persisted;
// all text fields are immutable after creation and only the status may
// change, through ChangeStatus.
type PermitApplication struct {
	shared.EventRecorder
	ID              uint64
	Owner           uuid.UUID
	PropertyAddress string
	Document        string
	LicenceNumber   string
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPermitApplication creates a new permit application in APPLIED status.
// The ID stays zero until the repository assigns the next sequential one.
func NewPermitApplication(owner uuid.UUID, propertyAddress, document, licenceNumber string, status Status) (*PermitApplication, error) {
	if owner == uuid.Nil {
		return nil, shared.NewValidationError("Owner identity cannot be empty")
	}
	if strings.TrimSpace(propertyAddress) == "" {
		return nil, shared.NewValidationError("Property address cannot be empty")
	}
	if strings.TrimSpace(document) == "" {
		return nil, shared.NewValidationError("Document reference cannot be empty")
	}
	if strings.TrimSpace(licenceNumber) == "" {
		return nil, shared.NewValidationError("Licence number cannot be empty")
	}
	if status != StatusApplied {
		return nil, shared.NewValidationError("A new permit application must start in APPLIED status")
	}

	now := time.Now()
	return &PermitApplication{
		Owner:           owner,
		PropertyAddress: propertyAddress,
		Document:        document,
		LicenceNumber:   licenceNumber,
		Status:          StatusApplied,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AssignID binds the repository-allocated sequential ID and records the
// creation event. Called exactly once, inside the creating transaction.
func (p *PermitApplication) AssignID(id uint64) error {
	if p.ID != 0 {
		return shared.NewValidationError("Permit application already has an ID assigned")
	}
	if id == 0 {
		return shared.NewValidationError("Permit application ID must be positive")
	}
	p.ID = id
	p.AddDomainEvent(NewPermitCreatedEvent(p))
	return nil
}

// ChangeStatus transitions the application to a new status. Checks run in a
// fixed order so rejection reasons are deterministic: status-value checks
// first, authorization checks last.
func (p *PermitApplication) ChangeStatus(actor uuid.UUID, actorRole identity.Role, newStatus Status, policy TransitionPolicy) error {
	if !newStatus.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown status: %s", newStatus))
	}
	if newStatus == p.Status {
		return shared.NewNoOpError(fmt.Sprintf("Permit %d already has status %s", p.ID, p.Status))
	}
	if newStatus == StatusApplied {
		return shared.NewNoOpError("Status cannot revert to APPLIED")
	}
	if !policy.CanTransition(p.Status, newStatus) {
		return shared.NewNoOpError(fmt.Sprintf("Cannot transition permit from %s to %s", p.Status, newStatus))
	}
	if actor == p.Owner {
		return shared.NewAuthorizationError("Owner cannot change the status of their own application")
	}
	if actorRole != identity.RoleAuthority {
		return shared.NewAuthorizationError("Only the permit authority may change permit status")
	}

	previous := p.Status
	p.Status = newStatus
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPermitStatusChangedEvent(p, previous, actor))

	return nil
}

// IsApplied returns true if the application has not been advanced yet
func (p *PermitApplication) IsApplied() bool {
	return p.Status == StatusApplied
}

// IsApproved returns true if the application is approved
func (p *PermitApplication) IsApproved() bool {
	return p.Status == StatusApproved
}

// IsDenied returns true if the application is denied
func (p *PermitApplication) IsDenied() bool {
	return p.Status == StatusDenied
}
