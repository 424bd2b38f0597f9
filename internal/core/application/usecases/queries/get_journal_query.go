package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetJournalQueryIsNotConstructed = errors.New(
	"GetJournalQuery must be created via NewGetJournalQuery constructor",
)

// GetJournalQuery retrieves an order's audit trail ordered by occurrence time.
type GetJournalQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJournalQuery creates a query for an order's journal.
func NewGetJournalQuery(orderID kernel.UUID) (GetJournalQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetJournalQuery{}, err
	}

	return GetJournalQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJournalQuery) Validate() error {
	return q.guard.Validate(ErrGetJournalQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose journal is requested.
func (q GetJournalQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetJournalQueryResponse is one audit event in occurrence order.
type GetJournalQueryResponse struct {
	ID         kernel.UUID
	OccurredAt time.Time
	EventType  string
	ActorID    *kernel.UUID
	Payload    json.RawMessage
}
