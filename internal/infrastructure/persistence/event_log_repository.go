package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/propflow/backend/internal/domain/shared"
	"github.com/propflow/backend/internal/infrastructure/persistence/models"
)

// EventPayloadSerializer turns a domain event into its stored payload
type EventPayloadSerializer interface {
	Serialize(event shared.DomainEvent) ([]byte, error)
}

// GormEventLogRepository implements the append-only event log on GORM. It
// doubles as the EventLogAppender repositories use to write entries inside
// their own transactions.
type GormEventLogRepository struct {
	db         *gorm.DB
	serializer EventPayloadSerializer
}

// NewGormEventLogRepository creates a new GormEventLogRepository
func NewGormEventLogRepository(db *gorm.DB, serializer EventPayloadSerializer) *GormEventLogRepository {
	return &GormEventLogRepository{db: db, serializer: serializer}
}

// AppendEvents serializes domain events and appends them to the log within
// the given transaction
func (r *GormEventLogRepository) AppendEvents(ctx context.Context, txProvider interface{}, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, ok := txProvider.(*gorm.DB)
	if !ok {
		return fmt.Errorf("txProvider must be a *gorm.DB, got %T", txProvider)
	}

	for _, event := range events {
		payload, err := r.serializer.Serialize(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
		}

		model := models.EventLogEntryModelFromDomain(shared.NewEventLogEntry(event, payload))
		if err := tx.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Append persists pre-built entries outside of a repository transaction
func (r *GormEventLogRepository) Append(ctx context.Context, entries ...*shared.EventLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	records := make([]*models.EventLogEntryModel, len(entries))
	for i, entry := range entries {
		records[i] = models.EventLogEntryModelFromDomain(entry)
	}
	if err := r.db.WithContext(ctx).Create(records).Error; err != nil {
		return err
	}
	for i, record := range records {
		entries[i].Sequence = record.Sequence
	}
	return nil
}

// FindUndispatched retrieves entries not yet delivered to subscribers, oldest first
func (r *GormEventLogRepository) FindUndispatched(ctx context.Context, limit int) ([]*shared.EventLogEntry, error) {
	var records []models.EventLogEntryModel
	if err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("sequence ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	entries := make([]*shared.EventLogEntry, len(records))
	for i := range records {
		entries[i] = records[i].ToDomain()
	}
	return entries, nil
}

// MarkDispatched marks entries as delivered. Entries stay in the log forever;
// only the dispatch marker changes.
func (r *GormEventLogRepository) MarkDispatched(ctx context.Context, sequences []uint64) error {
	if len(sequences) == 0 {
		return nil
	}
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.EventLogEntryModel{}).
		Where("sequence IN ?", sequences).
		Update("dispatched_at", now).Error
}

// List retrieves entries in append order with optional filtering
func (r *GormEventLogRepository) List(ctx context.Context, filter shared.EventLogFilter) ([]*shared.EventLogEntry, int64, error) {
	var total int64
	if err := r.applyEventFilter(r.db.WithContext(ctx).Model(&models.EventLogEntryModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyEventFilter(r.db.WithContext(ctx).Model(&models.EventLogEntryModel{}), filter).
		Order("sequence ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var records []models.EventLogEntryModel
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*shared.EventLogEntry, len(records))
	for i := range records {
		entries[i] = records[i].ToDomain()
	}
	return entries, total, nil
}

func (r *GormEventLogRepository) applyEventFilter(query *gorm.DB, filter shared.EventLogFilter) *gorm.DB {
	if filter.AggregateType != "" {
		query = query.Where("aggregate_type = ?", filter.AggregateType)
	}
	if filter.AggregateID != 0 {
		query = query.Where("aggregate_id = ?", filter.AggregateID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	return query
}

// Ensure interfaces are implemented
var (
	_ shared.EventLogRepository = (*GormEventLogRepository)(nil)
	_ shared.EventLogAppender   = (*GormEventLogRepository)(nil)
)
