package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/propflow/backend/internal/infrastructure/persistence/models"
)

// GormLoanRepository implements property.LoanRepository using GORM
type GormLoanRepository struct {
	db     *gorm.DB
	events shared.EventLogAppender
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB, events shared.EventLogAppender) *GormLoanRepository {
	return &GormLoanRepository{db: db, events: events}
}

// Create allocates the next loan ID and persists the application together
// with its creation event
func (r *GormLoanRepository) Create(ctx context.Context, loan *property.LoanApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, property.CounterLoan)
		if err != nil {
			return err
		}

		if err := loan.AssignID(id); err != nil {
			return err
		}

		model := models.LoanApplicationModelFromDomain(loan)
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		if err := r.events.AppendEvents(ctx, tx, loan.GetDomainEvents()...); err != nil {
			return err
		}
		loan.ClearDomainEvents()
		return nil
	})
}

// Save persists a status change with optimistic locking and appends the
// recorded events in the same transaction
func (r *GormLoanRepository) Save(ctx context.Context, loan *property.LoanApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := loan.Version
		loan.Version++
		loan.UpdatedAt = time.Now()

		result := tx.Model(&models.LoanApplicationModel{}).
			Where("id = ? AND version = ?", loan.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":     loan.Status,
				"version":    loan.Version,
				"updated_at": loan.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.LoanApplicationModel{}).
				Where("id = ?", loan.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		if err := r.events.AppendEvents(ctx, tx, loan.GetDomainEvents()...); err != nil {
			return err
		}
		loan.ClearDomainEvents()
		return nil
	})
}

// FindByID finds a loan application by its ID
func (r *GormLoanRepository) FindByID(ctx context.Context, id uint64) (*property.LoanApplication, error) {
	var model models.LoanApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds loan applications with filtering and pagination
func (r *GormLoanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.LoanApplication, int64, error) {
	var total int64
	countQuery := applyStatusFilter(r.db.WithContext(ctx).Model(&models.LoanApplicationModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.LoanApplicationModel
	listQuery := applyStatusFilter(r.db.WithContext(ctx).Model(&models.LoanApplicationModel{}), filter)
	if err := applyPagination(listQuery, filter).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	loans := make([]property.LoanApplication, len(records))
	for i := range records {
		loans[i] = *records[i].ToDomain()
	}
	return loans, total, nil
}

// Count returns the loan counter value, the highest ID assigned so far
func (r *GormLoanRepository) Count(ctx context.Context) (uint64, error) {
	return counterValue(r.db.WithContext(ctx), property.CounterLoan)
}

// Ensure GormLoanRepository implements LoanRepository
var _ property.LoanRepository = (*GormLoanRepository)(nil)
