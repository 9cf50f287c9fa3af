package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
)

// EventSerializer converts domain events to and from their JSON log payloads.
// Deserialization needs a type registry because the log stores only the event
// type name alongside the payload bytes.
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates an empty event serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{
		registry: make(map[string]reflect.Type),
	}
}

// NewPropertyEventSerializer creates a serializer with every permit and loan
// event type registered
func NewPropertyEventSerializer() *EventSerializer {
	s := NewEventSerializer()
	s.Register(property.EventTypePermitCreated, &property.PermitCreatedEvent{})
	s.Register(property.EventTypePermitStatusChanged, &property.PermitStatusChangedEvent{})
	s.Register(property.EventTypeLoanCreated, &property.LoanCreatedEvent{})
	s.Register(property.EventTypeLoanStatusChanged, &property.LoanStatusChangedEvent{})
	return s
}

// Register maps an event type name to the Go type used for deserialization.
// The eventType must match what EventType() returns on the event.
func (s *EventSerializer) Register(eventType string, eventInstance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(eventInstance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// Serialize serializes a domain event to JSON bytes
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Deserialize reconstructs a domain event from its type name and JSON bytes
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.registry[eventType]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	eventPtr := reflect.New(t).Interface()
	if err := json.Unmarshal(data, eventPtr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	event, ok := eventPtr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("deserialized %s does not implement DomainEvent", eventType)
	}
	return event, nil
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}
