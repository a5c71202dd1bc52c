package eventstore

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEventType marks a persisted type name with no registered factory.
// Stream reads skip such records with a warning instead of failing replay.
var ErrUnknownEventType = errors.New("unknown event type")

// Registry resolves persisted event type names back to concrete event shapes
// through an explicit, closed name-to-factory map populated at startup. No
// reflection over packages: the set of valid event shapes stays statically
// auditable, and unknown type names cannot trigger arbitrary type loading.
type Registry struct {
	factories map[string]func() Event
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() Event)}
}

// Register binds an event type name to a factory producing a zero value of
// the concrete shape. Duplicate registration is a programmer error.
func (r *Registry) Register(eventType string, factory func() Event) error {
	if eventType == "" {
		return errors.New("eventstore: event type cannot be empty")
	}
	if factory == nil {
		return errors.New("eventstore: event factory cannot be nil")
	}
	if _, exists := r.factories[eventType]; exists {
		return fmt.Errorf("eventstore: event type %q already registered", eventType)
	}
	r.factories[eventType] = factory
	return nil
}

// MustRegister panics on registration failure; for startup wiring.
func (r *Registry) MustRegister(eventType string, factory func() Event) {
	if err := r.Register(eventType, factory); err != nil {
		panic(err)
	}
}

// Known reports whether a type name has a registered factory.
func (r *Registry) Known(eventType string) bool {
	_, ok := r.factories[eventType]
	return ok
}

// Decode resolves a record's type name and unmarshals its payload into a
// fresh instance of the concrete shape.
func (r *Registry) Decode(record Record) (Event, error) {
	factory, ok := r.factories[record.EventType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, record.EventType)
	}
	event := factory()
	if err := json.Unmarshal(record.Payload, event); err != nil {
		return nil, fmt.Errorf("decode %q payload: %w", record.EventType, err)
	}
	return event, nil
}

// Encode serializes an event's full field set for persistence.
func Encode(event Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", event.EventType(), err)
	}
	return payload, nil
}
