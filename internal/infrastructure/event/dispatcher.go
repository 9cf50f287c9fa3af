package event

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/propflow/backend/internal/domain/shared"
)

// DispatcherConfig holds configuration for the log dispatcher
type DispatcherConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// DefaultDispatcherConfig returns default configuration
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		BatchSize:    100,
		PollInterval: 5 * time.Second,
	}
}

// LogDispatcher delivers committed event log entries to in-process
// subscribers. It polls for undispatched entries, publishes them to the bus,
// and marks them dispatched. Entries stay in the log forever; dispatch only
// sets the marker, which is what makes the log a reliable audit trail and
// an at-least-once delivery channel at the same time.
type LogDispatcher struct {
	repo       shared.EventLogRepository
	bus        shared.EventPublisher
	serializer *EventSerializer
	config     DispatcherConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLogDispatcher creates a new log dispatcher
func NewLogDispatcher(
	repo shared.EventLogRepository,
	bus shared.EventPublisher,
	serializer *EventSerializer,
	config DispatcherConfig,
	logger *zap.Logger,
) *LogDispatcher {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultDispatcherConfig().BatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultDispatcherConfig().PollInterval
	}
	return &LogDispatcher{
		repo:       repo,
		bus:        bus,
		serializer: serializer,
		config:     config,
		logger:     logger,
	}
}

// Start begins background polling
func (d *LogDispatcher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.pollLoop(ctx)

	d.logger.Info("event dispatcher started",
		zap.Int("batch_size", d.config.BatchSize),
		zap.Duration("poll_interval", d.config.PollInterval),
	)
	return nil
}

// Stop waits for the poll loop to finish or the context to expire
func (d *LogDispatcher) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("event dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *LogDispatcher) pollLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchPending(ctx)
		}
	}
}

// DispatchPending delivers one batch of undispatched entries. It is exposed
// so tests and shutdown paths can drain the log without waiting for a tick.
func (d *LogDispatcher) DispatchPending(ctx context.Context) {
	entries, err := d.repo.FindUndispatched(ctx, d.config.BatchSize)
	if err != nil {
		d.logger.Error("failed to load undispatched events", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	dispatched := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		evt, err := d.serializer.Deserialize(entry.EventType, entry.Payload)
		if err != nil {
			// An undeserializable entry would be retried forever, so mark it
			// dispatched and rely on the log row itself for the audit trail
			d.logger.Error("failed to deserialize event log entry",
				zap.Uint64("sequence", entry.Sequence),
				zap.String("event_type", entry.EventType),
				zap.Error(err),
			)
			dispatched = append(dispatched, entry.Sequence)
			continue
		}

		if err := d.bus.Publish(ctx, evt); err != nil {
			d.logger.Error("failed to publish event",
				zap.Uint64("sequence", entry.Sequence),
				zap.String("event_type", entry.EventType),
				zap.Error(err),
			)
			continue
		}
		dispatched = append(dispatched, entry.Sequence)
	}

	if len(dispatched) == 0 {
		return
	}
	if err := d.repo.MarkDispatched(ctx, dispatched); err != nil {
		d.logger.Error("failed to mark events dispatched", zap.Error(err))
		return
	}

	d.logger.Debug("dispatched events", zap.Int("count", len(dispatched)))
}
