package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LoanApplication represents an application for financing tied to a
// property. It mirrors PermitApplication: dense sequential IDs, immutable
// fields after creation, status mutable only via ChangeStatus.
type LoanApplication struct {
	shared.EventRecorder
	ID              uint64
	Owner           uuid.UUID
	FullName        string
	PropertyAddress string
	AnnualIncome    decimal.Decimal
	LoanAmount      decimal.Decimal
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewLoanApplication creates a new loan application in APPLIED status
func NewLoanApplication(owner uuid.UUID, fullName, propertyAddress string, annualIncome, loanAmount decimal.Decimal, status Status) (*LoanApplication, error) {
	if owner == uuid.Nil {
		return nil, shared.NewValidationError("Owner identity cannot be empty")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewValidationError("Full name cannot be empty")
	}
	if strings.TrimSpace(propertyAddress) == "" {
		return nil, shared.NewValidationError("Property address cannot be empty")
	}
	if !annualIncome.IsPositive() {
		return nil, shared.NewValidationError("Annual income must be positive")
	}
	if !loanAmount.IsPositive() {
		return nil, shared.NewValidationError("Loan amount must be positive")
	}
	if status != StatusApplied {
		return nil, shared.NewValidationError("A new loan application must start in APPLIED status")
	}

	now := time.Now()
	return &LoanApplication{
		Owner:           owner,
		FullName:        fullName,
		PropertyAddress: propertyAddress,
		AnnualIncome:    annualIncome,
		LoanAmount:      loanAmount,
		Status:          StatusApplied,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AssignID binds the repository-allocated sequential ID and records the
// creation event. Called exactly once, inside the creating transaction.
func (l *LoanApplication) AssignID(id uint64) error {
	if l.ID != 0 {
		return shared.NewValidationError("Loan application already has an ID assigned")
	}
	if id == 0 {
		return shared.NewValidationError("Loan application ID must be positive")
	}
	l.ID = id
	l.AddDomainEvent(NewLoanCreatedEvent(l))
	return nil
}

// ChangeStatus transitions the application to a new status. Same fixed check
// order as PermitApplication.ChangeStatus, with the bank as approver role.
func (l *LoanApplication) ChangeStatus(actor uuid.UUID, actorRole identity.Role, newStatus Status, policy TransitionPolicy) error {
	if !newStatus.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown status: %s", newStatus))
	}
	if newStatus == l.Status {
		return shared.NewNoOpError(fmt.Sprintf("Loan %d already has status %s", l.ID, l.Status))
	}
	if newStatus == StatusApplied {
		return shared.NewNoOpError("Status cannot revert to APPLIED")
	}
	if !policy.CanTransition(l.Status, newStatus) {
		return shared.NewNoOpError(fmt.Sprintf("Cannot transition loan from %s to %s", l.Status, newStatus))
	}
	if actor == l.Owner {
		return shared.NewAuthorizationError("Owner cannot change the status of their own application")
	}
	if actorRole != identity.RoleBank {
		return shared.NewAuthorizationError("Only the bank may change loan status")
	}

	previous := l.Status
	l.Status = newStatus
	l.UpdatedAt = time.Now()

	l.AddDomainEvent(NewLoanStatusChangedEvent(l, previous, actor))

	return nil
}

// IsApplied returns true if the application has not been advanced yet
func (l *LoanApplication) IsApplied() bool {
	return l.Status == StatusApplied
}

// IsApproved returns true if the application is approved
func (l *LoanApplication) IsApproved() bool {
	return l.Status == StatusApproved
}
