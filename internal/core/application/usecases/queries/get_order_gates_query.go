// Package queries contains read-only operations over the fulfillment store.
// Implements the Query side of the CQRS architecture: handlers read the
// database (or gate sources) directly and return plain response structs,
// bypassing the aggregates.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderGatesQueryIsNotConstructed = errors.New(
	"GetOrderGatesQuery must be created via NewGetOrderGatesQuery constructor",
)

// GetOrderGatesQuery retrieves the current truth value of every gate for an
// order, so a UI can explain exactly which preconditions block a transition.
type GetOrderGatesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderGatesQuery creates a query for an order's gate values.
func NewGetOrderGatesQuery(orderID kernel.UUID) (GetOrderGatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderGatesQuery{}, err
	}

	return GetOrderGatesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderGatesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderGatesQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to inspect.
func (q GetOrderGatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderGatesQueryResponse carries gate names mapped to their current
// truth values.
type GetOrderGatesQueryResponse struct {
	Gates map[string]bool
}
