package kernel

import (
	"maps"
	"time"
)

// DomainEvent is a notification recorded by an aggregate on a state transition.
// Events are delivered to the event sink only after the surrounding unit of work
// has committed.
type DomainEvent struct {
	id          UUID
	name        string
	aggregateID UUID
	occurredAt  time.Time
	attributes  map[string]string
}

// NewDomainEvent creates an event with a fresh identifier.
func NewDomainEvent(name string, aggregateID UUID, occurredAt time.Time, attributes map[string]string) DomainEvent {
	return DomainEvent{
		id:          NewUUID(),
		name:        name,
		aggregateID: aggregateID,
		occurredAt:  occurredAt,
		attributes:  maps.Clone(attributes),
	}
}

func (e DomainEvent) ID() UUID {
	return e.id
}

// Name is the dotted event type, e.g. "order.picking_started".
func (e DomainEvent) Name() string {
	return e.name
}

func (e DomainEvent) AggregateID() UUID {
	return e.aggregateID
}

func (e DomainEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Attributes returns a copy of the event attributes.
func (e DomainEvent) Attributes() map[string]string {
	return maps.Clone(e.attributes)
}

// EventSource is implemented by aggregates that record domain events.
// The unit of work drains tracked sources after commit.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder is embedded by aggregates to implement EventSource.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the recorded events in order.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops recorded events after they have been dispatched.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
