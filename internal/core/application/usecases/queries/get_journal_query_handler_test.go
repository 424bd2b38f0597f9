package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
)

type stubJournalStore struct {
	events []journal.Event
}

func (s stubJournalStore) Append(_ context.Context, _ journal.Event) error {
	return nil
}

func (s stubJournalStore) ListByOrder(_ context.Context, _ kernel.UUID) ([]journal.Event, error) {
	return s.events, nil
}

func TestGetJournalQueryHandler_Handle(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	events := []journal.Event{
		journal.NewEvent(journal.EventTransition, orderID, &actorID,
			map[string]string{"key": "REQUEST_ACCEPT"}, occurredAt),
		journal.NewEvent(journal.EventSLA, orderID, nil,
			map[string]string{"stage": "SLA_PACK"}, occurredAt.Add(time.Hour)),
	}
	handler := queries.NewGetJournalQueryHandler(stubJournalStore{events: events})

	query, err := queries.NewGetJournalQuery(orderID)
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "transition", result[0].EventType)
	require.NotNil(t, result[0].ActorID)
	assert.True(t, actorID.IsEqual(*result[0].ActorID))
	assert.JSONEq(t, `{"key":"REQUEST_ACCEPT"}`, string(result[0].Payload))

	assert.Equal(t, "sla", result[1].EventType)
	assert.Nil(t, result[1].ActorID)
}

func TestGetJournalQueryHandler_RejectsUnconstructedQuery(t *testing.T) {
	handler := queries.NewGetJournalQueryHandler(stubJournalStore{})

	_, err := handler.Handle(context.Background(), queries.GetJournalQuery{})
	require.ErrorIs(t, err, queries.ErrGetJournalQueryIsNotConstructed)
}
