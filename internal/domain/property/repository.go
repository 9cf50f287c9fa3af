package property

import (
	"context"

	"github.com/propflow/backend/internal/domain/shared"
)

// Counter entity type keys used by repositories for sequential id allocation
const (
	CounterPermit = "permit"
	CounterLoan   = "loan"
)

// PermitRepository defines the persistence interface for permit applications
type PermitRepository interface {
	// Create atomically allocates the next sequential ID, inserts the record
	// and appends its pending events to the event log. On failure nothing is
	// persisted and the ID is not consumed.
	Create(ctx context.Context, permit *PermitApplication) error
	// Save persists a status change with optimistic locking and appends the
	// pending events in the same transaction. Returns
	// shared.ErrConcurrencyConflict when the record changed concurrently.
	Save(ctx context.Context, permit *PermitApplication) error
	// FindByID returns the permit or shared.ErrNotFound. IDs of zero or
	// beyond the counter do not exist.
	FindByID(ctx context.Context, id uint64) (*PermitApplication, error)
	// FindAll returns permits in ID order with optional status filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]PermitApplication, int64, error)
	// Count returns the permit counter, which always equals both the number
	// of permits created and the highest valid ID
	Count(ctx context.Context) (uint64, error)
}

// LoanRepository defines the persistence interface for loan applications
type LoanRepository interface {
	Create(ctx context.Context, loan *LoanApplication) error
	Save(ctx context.Context, loan *LoanApplication) error
	FindByID(ctx context.Context, id uint64) (*LoanApplication, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]LoanApplication, int64, error)
	Count(ctx context.Context) (uint64, error)
}
