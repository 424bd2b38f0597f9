package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetChangeRequestsQueryIsNotConstructed = errors.New(
	"GetChangeRequestsQuery must be created via NewGetChangeRequestsQuery constructor",
)

// GetChangeRequestsQuery retrieves every change request filed against an
// order, newest first.
type GetChangeRequestsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetChangeRequestsQuery creates a query for an order's change requests.
func NewGetChangeRequestsQuery(orderID kernel.UUID) (GetChangeRequestsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetChangeRequestsQuery{}, err
	}

	return GetChangeRequestsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetChangeRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetChangeRequestsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose requests are listed.
func (q GetChangeRequestsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetChangeRequestsQueryResponse is one change request in the read model.
// Edits and approvals are passed through as raw JSON for the HTTP layer.
type GetChangeRequestsQueryResponse struct {
	ID            kernel.UUID
	Status        string
	Rationale     string
	BaseVersion   int
	CreatedByRole string
	CreatedAt     time.Time
	AppliedAt     *time.Time
	RejectedAt    *time.Time
	Edits         json.RawMessage
	Approvals     json.RawMessage
}
