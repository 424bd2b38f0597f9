package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
)

// JournalPublisher records lifecycle events for audit. Publishing is
// fire-and-forget: it never blocks the calling command and a journal failure
// never fails the operation that produced the event.
type JournalPublisher interface {
	Publish(event journal.Event)
}

// JournalStore is the persistence contract behind the publisher.
type JournalStore interface {
	// Append persists a single journal event.
	Append(ctx context.Context, event journal.Event) error

	// ListByOrder retrieves an order's journal ordered by occurrence time
	// ascending.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]journal.Event, error)
}
