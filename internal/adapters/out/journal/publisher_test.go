package journal_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "fulfillment/internal/adapters/out/journal"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
)

type collectingStore struct {
	mu     sync.Mutex
	events []journal.Event
}

func (s *collectingStore) Append(_ context.Context, event journal.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)

	return nil
}

func (s *collectingStore) ListByOrder(_ context.Context, _ kernel.UUID) ([]journal.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]journal.Event(nil), s.events...), nil
}

func someEvent() journal.Event {
	return journal.NewEvent(journal.EventTransition, kernel.NewUUID(), nil,
		map[string]string{"key": "accept"}, time.Now().UTC())
}

func TestAsyncPublisherDeliversAllBufferedEvents(t *testing.T) {
	store := &collectingStore{}
	publisher := adapter.NewAsyncPublisher(store, 16, slog.New(slog.DiscardHandler))
	publisher.Start()

	published := []journal.Event{someEvent(), someEvent(), someEvent()}
	for _, event := range published {
		publisher.Publish(event)
	}

	publisher.Stop()

	require.Len(t, store.events, len(published))
	for i, event := range published {
		assert.True(t, event.ID.IsEqual(store.events[i].ID))
	}
}

func TestAsyncPublisherDropsWhenBufferFull(t *testing.T) {
	store := &collectingStore{}
	publisher := adapter.NewAsyncPublisher(store, 1, slog.New(slog.DiscardHandler))

	// Worker not started: the single buffer slot fills and the rest drop.
	publisher.Publish(someEvent())
	publisher.Publish(someEvent())
	publisher.Publish(someEvent())

	publisher.Start()
	publisher.Stop()

	assert.Len(t, store.events, 1)
}

func TestAsyncPublisherStopWithoutStartReturns(t *testing.T) {
	store := &collectingStore{}
	publisher := adapter.NewAsyncPublisher(store, 4, slog.New(slog.DiscardHandler))
	publisher.Publish(someEvent())

	done := make(chan struct{})
	go func() {
		publisher.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a publisher that was never started")
	}

	assert.Empty(t, store.events)
}

func TestAsyncPublisherStopIsIdempotent(t *testing.T) {
	store := &collectingStore{}
	publisher := adapter.NewAsyncPublisher(store, 4, slog.New(slog.DiscardHandler))
	publisher.Start()
	publisher.Publish(someEvent())

	publisher.Stop()
	publisher.Stop()

	assert.Len(t, store.events, 1)
}
