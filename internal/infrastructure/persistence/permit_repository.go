package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/propflow/backend/internal/infrastructure/persistence/models"
)

// GormPermitRepository implements property.PermitRepository using GORM.
// Every mutation commits the record change and its event log entries in one
// transaction, so the log never disagrees with the records.
type GormPermitRepository struct {
	db     *gorm.DB
	events shared.EventLogAppender
}

// NewGormPermitRepository creates a new GormPermitRepository
func NewGormPermitRepository(db *gorm.DB, events shared.EventLogAppender) *GormPermitRepository {
	return &GormPermitRepository{db: db, events: events}
}

// Create allocates the next permit ID and persists the application together
// with its creation event
func (r *GormPermitRepository) Create(ctx context.Context, permit *property.PermitApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, property.CounterPermit)
		if err != nil {
			return err
		}

		if err := permit.AssignID(id); err != nil {
			return err
		}

		model := models.PermitApplicationModelFromDomain(permit)
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		if err := r.events.AppendEvents(ctx, tx, permit.GetDomainEvents()...); err != nil {
			return err
		}
		permit.ClearDomainEvents()
		return nil
	})
}

// Save persists a status change with optimistic locking and appends the
// recorded events in the same transaction
func (r *GormPermitRepository) Save(ctx context.Context, permit *property.PermitApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := permit.Version
		permit.Version++
		permit.UpdatedAt = time.Now()

		result := tx.Model(&models.PermitApplicationModel{}).
			Where("id = ? AND version = ?", permit.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":     permit.Status,
				"version":    permit.Version,
				"updated_at": permit.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.PermitApplicationModel{}).
				Where("id = ?", permit.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		if err := r.events.AppendEvents(ctx, tx, permit.GetDomainEvents()...); err != nil {
			return err
		}
		permit.ClearDomainEvents()
		return nil
	})
}

// FindByID finds a permit application by its ID
func (r *GormPermitRepository) FindByID(ctx context.Context, id uint64) (*property.PermitApplication, error) {
	var model models.PermitApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds permit applications with filtering and pagination
func (r *GormPermitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.PermitApplication, int64, error) {
	var total int64
	countQuery := applyStatusFilter(r.db.WithContext(ctx).Model(&models.PermitApplicationModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.PermitApplicationModel
	listQuery := applyStatusFilter(r.db.WithContext(ctx).Model(&models.PermitApplicationModel{}), filter)
	if err := applyPagination(listQuery, filter).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	permits := make([]property.PermitApplication, len(records))
	for i := range records {
		permits[i] = *records[i].ToDomain()
	}
	return permits, total, nil
}

// Count returns the permit counter value, the highest ID assigned so far
func (r *GormPermitRepository) Count(ctx context.Context) (uint64, error) {
	return counterValue(r.db.WithContext(ctx), property.CounterPermit)
}

// applyStatusFilter narrows the query by status when the filter carries one
func applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// applyPagination applies ordering and pagination. Only ID and timestamp
// columns are sortable; anything else falls back to ID order.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	switch orderBy {
	case "id", "created_at", "updated_at":
	default:
		orderBy = "id"
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormPermitRepository implements PermitRepository
var _ property.PermitRepository = (*GormPermitRepository)(nil)
