package property

import (
	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeLoan = "LoanApplication"

// Event type constants
const (
	EventTypeLoanCreated       = "LoanCreated"
	EventTypeLoanStatusChanged = "LoanStatusChanged"
)

// LoanCreatedEvent is raised when a new loan application is created
type LoanCreatedEvent struct {
	shared.BaseDomainEvent
	LoanID          uint64          `json:"loan_id"`
	Owner           uuid.UUID       `json:"owner"`
	FullName        string          `json:"full_name"`
	PropertyAddress string          `json:"property_address"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	Status          Status          `json:"status"`
}

// NewLoanCreatedEvent creates a new LoanCreatedEvent
func NewLoanCreatedEvent(loan *LoanApplication) *LoanCreatedEvent {
	return &LoanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanCreated, AggregateTypeLoan, loan.ID, loan.Owner),
		LoanID:          loan.ID,
		Owner:           loan.Owner,
		FullName:        loan.FullName,
		PropertyAddress: loan.PropertyAddress,
		AnnualIncome:    loan.AnnualIncome,
		LoanAmount:      loan.LoanAmount,
		Status:          loan.Status,
	}
}

// EventType returns the event type name
func (e *LoanCreatedEvent) EventType() string {
	return EventTypeLoanCreated
}

// LoanStatusChangedEvent is raised when the bank changes a loan's status
type LoanStatusChangedEvent struct {
	shared.BaseDomainEvent
	LoanID         uint64    `json:"loan_id"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	AuthorizedBy   uuid.UUID `json:"authorized_by"`
}

// NewLoanStatusChangedEvent creates a new LoanStatusChangedEvent
func NewLoanStatusChangedEvent(loan *LoanApplication, previous Status, authorizedBy uuid.UUID) *LoanStatusChangedEvent {
	return &LoanStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanStatusChanged, AggregateTypeLoan, loan.ID, authorizedBy),
		LoanID:          loan.ID,
		PreviousStatus:  previous,
		NewStatus:       loan.Status,
		AuthorizedBy:    authorizedBy,
	}
}

// EventType returns the event type name
func (e *LoanStatusChangedEvent) EventType() string {
	return EventTypeLoanStatusChanged
}
