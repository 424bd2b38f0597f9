package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetJournalQueryHandler serves an order's audit trail. Unlike the other read
// models it goes through the journal store port rather than raw SQL: the
// journal lives outside the transactional write path and its store already
// exposes exactly this read.
type GetJournalQueryHandler struct {
	store ports.JournalStore
}

// NewGetJournalQueryHandler creates the handler over the journal store.
func NewGetJournalQueryHandler(store ports.JournalStore) GetJournalQueryHandler {
	return GetJournalQueryHandler{store: store}
}

// Handle returns the order's journal events ordered by occurrence time
// ascending. An order with no events yields an empty list, not an error.
func (h GetJournalQueryHandler) Handle(
	ctx context.Context,
	query GetJournalQuery,
) ([]GetJournalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.store.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	responses := make([]GetJournalQueryResponse, len(events))
	for i, event := range events {
		responses[i] = GetJournalQueryResponse{
			ID:         event.ID,
			OccurredAt: event.OccurredAt,
			EventType:  string(event.Type),
			ActorID:    event.ActorID,
			Payload:    event.Payload,
		}
	}

	return responses, nil
}
