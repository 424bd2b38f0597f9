// Package journal defines the append-only audit event emitted by every
// state-affecting operation in the core. The journal is observability, not
// the system of record: publishing is fire-and-forget and a lost event never
// fails the operation that produced it.
package journal

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType classifies journal events.
type EventType string

const (
	EventTransition EventType = "transition"
	EventSLA        EventType = "sla"

	// EventRACINote records a change request entering the approval flow: the
	// filer's rationale is the note addressed to the accountable approvers.
	// Decisions on it are journaled separately as EventCRDecision.
	EventRACINote EventType = "raci_note"

	EventCRDecision EventType = "cr_decision"
	EventRollback   EventType = "rollback"
)

// Event is one audit record. Payload is an opaque JSON document; consumers
// interpret it by Type.
type Event struct {
	ID         kernel.UUID
	OccurredAt time.Time
	Type       EventType
	OrderID    kernel.UUID
	ActorID    *kernel.UUID
	Payload    json.RawMessage
}

// NewEvent builds a journal event with a fresh id. The payload is marshalled
// here so publishers hand over plain structs; a payload that cannot be
// marshalled is replaced by null rather than failing the caller.
func NewEvent(
	eventType EventType,
	orderID kernel.UUID,
	actorID *kernel.UUID,
	payload any,
	occurredAt time.Time,
) Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = json.RawMessage("null")
	}

	return Event{
		ID:         kernel.NewUUID(),
		OccurredAt: occurredAt,
		Type:       eventType,
		OrderID:    orderID,
		ActorID:    actorID,
		Payload:    raw,
	}
}
