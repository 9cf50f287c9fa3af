package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
)

// MockEventLogStore is a mock implementation of shared.EventLogRepository
type MockEventLogStore struct {
	mock.Mock
}

func (m *MockEventLogStore) Append(ctx context.Context, entries ...*shared.EventLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEventLogStore) FindUndispatched(ctx context.Context, limit int) ([]*shared.EventLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shared.EventLogEntry), args.Error(1)
}

func (m *MockEventLogStore) MarkDispatched(ctx context.Context, sequences []uint64) error {
	args := m.Called(ctx, sequences)
	return args.Error(0)
}

func (m *MockEventLogStore) List(ctx context.Context, filter shared.EventLogFilter) ([]*shared.EventLogEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*shared.EventLogEntry), args.Get(1).(int64), args.Error(2)
}

func permitCreatedEntry(t *testing.T, serializer *EventSerializer, sequence uint64) *shared.EventLogEntry {
	t.Helper()
	permit := newCreatedPermit(t)
	evt := permit.GetDomainEvents()[0]
	payload, err := serializer.Serialize(evt)
	require.NoError(t, err)

	entry := shared.NewEventLogEntry(evt, payload)
	entry.Sequence = sequence
	return entry
}

func TestLogDispatcher_DispatchPending(t *testing.T) {
	serializer := NewPropertyEventSerializer()
	store := new(MockEventLogStore)
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(property.EventTypePermitCreated)
	bus.Subscribe(handler)

	entries := []*shared.EventLogEntry{
		permitCreatedEntry(t, serializer, 1),
		permitCreatedEntry(t, serializer, 2),
	}
	store.On("FindUndispatched", mock.Anything, 100).Return(entries, nil)
	store.On("MarkDispatched", mock.Anything, []uint64{1, 2}).Return(nil)

	dispatcher := NewLogDispatcher(store, bus, serializer, DefaultDispatcherConfig(), zap.NewNop())
	dispatcher.DispatchPending(context.Background())

	store.AssertExpectations(t)
	handled := handler.getHandled()
	require.Len(t, handled, 2)
	assert.IsType(t, &property.PermitCreatedEvent{}, handled[0])
}

func TestLogDispatcher_DispatchPending_NothingToDo(t *testing.T) {
	serializer := NewPropertyEventSerializer()
	store := new(MockEventLogStore)
	store.On("FindUndispatched", mock.Anything, 100).Return([]*shared.EventLogEntry{}, nil)

	dispatcher := NewLogDispatcher(store, NewInMemoryEventBus(zap.NewNop()), serializer,
		DefaultDispatcherConfig(), zap.NewNop())
	dispatcher.DispatchPending(context.Background())

	store.AssertNotCalled(t, "MarkDispatched", mock.Anything, mock.Anything)
}

func TestLogDispatcher_DispatchPending_UnknownTypeIsSkipped(t *testing.T) {
	serializer := NewPropertyEventSerializer()
	store := new(MockEventLogStore)
	bus := NewInMemoryEventBus(zap.NewNop())

	known := permitCreatedEntry(t, serializer, 1)
	unknown := permitCreatedEntry(t, serializer, 2)
	unknown.EventType = "RetiredEventType"

	store.On("FindUndispatched", mock.Anything, 100).
		Return([]*shared.EventLogEntry{known, unknown}, nil)
	// The undeserializable entry is still marked so it is not retried forever
	store.On("MarkDispatched", mock.Anything, []uint64{1, 2}).Return(nil)

	handler := newTestHandler()
	bus.Subscribe(handler)

	dispatcher := NewLogDispatcher(store, bus, serializer, DefaultDispatcherConfig(), zap.NewNop())
	dispatcher.DispatchPending(context.Background())

	store.AssertExpectations(t)
	assert.Len(t, handler.getHandled(), 1)
}

func TestLogDispatcher_ConfigDefaults(t *testing.T) {
	dispatcher := NewLogDispatcher(new(MockEventLogStore), NewInMemoryEventBus(zap.NewNop()),
		NewPropertyEventSerializer(), DispatcherConfig{}, zap.NewNop())

	assert.Equal(t, 100, dispatcher.config.BatchSize)
	assert.Equal(t, 5*time.Second, dispatcher.config.PollInterval)
}

func TestLogDispatcher_StartStop(t *testing.T) {
	serializer := NewPropertyEventSerializer()
	store := new(MockEventLogStore)
	store.On("FindUndispatched", mock.Anything, mock.Anything).
		Return([]*shared.EventLogEntry{}, nil).Maybe()

	dispatcher := NewLogDispatcher(store, NewInMemoryEventBus(zap.NewNop()), serializer,
		DispatcherConfig{BatchSize: 10, PollInterval: 10 * time.Millisecond}, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, dispatcher.Start(ctx))
	time.Sleep(30 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, dispatcher.Stop(stopCtx))
}
