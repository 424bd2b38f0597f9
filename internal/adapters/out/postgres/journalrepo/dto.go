// Package journalrepo persists journal events. The journal is observability,
// not the system of record: rows are append-only and nothing in the domain
// reads them back for decisions.
package journalrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents one journal row.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OccurredAt time.Time `gorm:"index"`
	EventType  string
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Payload    []byte     `gorm:"type:jsonb"`
}

// TableName specifies the database table name for journal events.
func (EventDTO) TableName() string {
	return "journal_events"
}

func fromDomain(event journal.Event) EventDTO {
	var actorID *uuid.UUID
	if event.ActorID != nil {
		raw := event.ActorID.Bytes()
		actorID = &raw
	}

	return EventDTO{
		ID:         event.ID.Bytes(),
		OccurredAt: event.OccurredAt,
		EventType:  string(event.Type),
		OrderID:    event.OrderID.Bytes(),
		ActorID:    actorID,
		Payload:    event.Payload,
	}
}

func toDomain(dto EventDTO) (journal.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return journal.Event{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return journal.Event{}, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		raw, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return journal.Event{}, actorErr
		}

		actorID = &raw
	}

	return journal.Event{
		ID:         id,
		OccurredAt: dto.OccurredAt,
		Type:       journal.EventType(dto.EventType),
		OrderID:    orderID,
		ActorID:    actorID,
		Payload:    json.RawMessage(dto.Payload),
	}, nil
}
