// Package events delivers committed domain events to external sinks.
//
// Every sink sends the same JSON envelope; the sinks differ only in transport:
//
//	{"event_id":"…","event_type":"order.received","aggregate_id":"…",
//	 "occurred_at":"2026-09-01T12:00:00Z","attributes":{"customer_id":"…"}}
//
// Delivery is fire-and-forget from the domain's point of view: the unit of work
// publishes after commit and only logs failures.
package events

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const contentType = "application/json"

// Envelope is the wire form of a domain event.
type Envelope struct {
	EventID     string            `json:"event_id"`
	EventType   string            `json:"event_type"`
	AggregateID string            `json:"aggregate_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Attributes  map[string]string `json:"attributes"`
}

func NewEnvelope(event kernel.DomainEvent) Envelope {
	attrs := event.Attributes()
	if attrs == nil {
		attrs = map[string]string{}
	}
	return Envelope{
		EventID:     event.ID().String(),
		EventType:   event.Name(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Attributes:  attrs,
	}
}

func marshal(event kernel.DomainEvent) ([]byte, error) {
	return json.Marshal(NewEnvelope(event))
}
