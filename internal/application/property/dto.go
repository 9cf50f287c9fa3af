package property

import (
	"encoding/json"
	"time"

	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreatePermitRequest carries the input for creating a permit application
type CreatePermitRequest struct {
	PropertyAddress string
	Document        string
	LicenceNumber   string
	Status          string
}

// CreateLoanRequest carries the input for creating a loan application
type CreateLoanRequest struct {
	FullName        string
	PropertyAddress string
	AnnualIncome    decimal.Decimal
	LoanAmount      decimal.Decimal
	Status          string
}

// ListFilter narrows list reads and paginates them
type ListFilter struct {
	Status   string
	Page     int
	PageSize int
}

// toDomainFilter normalizes the list filter into a shared.Filter
func (f ListFilter) toDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

// PermitResponse represents a permit application in service responses
type PermitResponse struct {
	ID              uint64    `json:"id"`
	Owner           string    `json:"owner"`
	PropertyAddress string    `json:"property_address"`
	Document        string    `json:"document"`
	LicenceNumber   string    `json:"licence_number"`
	Status          string    `json:"status"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToPermitResponse converts a domain permit to a response
func ToPermitResponse(p *property.PermitApplication) PermitResponse {
	return PermitResponse{
		ID:              p.ID,
		Owner:           p.Owner.String(),
		PropertyAddress: p.PropertyAddress,
		Document:        p.Document,
		LicenceNumber:   p.LicenceNumber,
		Status:          p.Status.String(),
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToPermitResponses converts a slice of domain permits to responses
func ToPermitResponses(permits []property.PermitApplication) []PermitResponse {
	responses := make([]PermitResponse, len(permits))
	for i := range permits {
		responses[i] = ToPermitResponse(&permits[i])
	}
	return responses
}

// LoanResponse represents a loan application in service responses
type LoanResponse struct {
	ID              uint64          `json:"id"`
	Owner           string          `json:"owner"`
	FullName        string          `json:"full_name"`
	PropertyAddress string          `json:"property_address"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	Status          string          `json:"status"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToLoanResponse converts a domain loan to a response
func ToLoanResponse(l *property.LoanApplication) LoanResponse {
	return LoanResponse{
		ID:              l.ID,
		Owner:           l.Owner.String(),
		FullName:        l.FullName,
		PropertyAddress: l.PropertyAddress,
		AnnualIncome:    l.AnnualIncome,
		LoanAmount:      l.LoanAmount,
		Status:          l.Status.String(),
		Version:         l.Version,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ToLoanResponses converts a slice of domain loans to responses
func ToLoanResponses(loans []property.LoanApplication) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i := range loans {
		responses[i] = ToLoanResponse(&loans[i])
	}
	return responses
}

// EventEntryResponse represents one event log entry in audit reads
type EventEntryResponse struct {
	Sequence      uint64          `json:"sequence"`
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uint64          `json:"aggregate_id"`
	Actor         string          `json:"actor"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToEventEntryResponse converts an event log entry to a response
func ToEventEntryResponse(e *shared.EventLogEntry) EventEntryResponse {
	return EventEntryResponse{
		Sequence:      e.Sequence,
		EventID:       e.EventID.String(),
		EventType:     e.EventType,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		Actor:         e.Actor.String(),
		Payload:       json.RawMessage(e.Payload),
		CreatedAt:     e.CreatedAt,
	}
}
