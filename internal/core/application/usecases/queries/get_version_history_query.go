package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetVersionHistoryQueryIsNotConstructed = errors.New(
	"GetVersionHistoryQuery must be created via NewGetVersionHistoryQuery constructor",
)

// GetVersionHistoryQuery retrieves an order's full version ledger, oldest
// first, for audit views and rollback pickers.
//
// Example:
//
//	query, _ := NewGetVersionHistoryQuery(orderID)
//	handler := NewGetVersionHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load ledger: %w", err)
//	}
//	for _, entry := range history {
//	    fmt.Printf("v%d at %s: %s\n", entry.Version, entry.CreatedAt, entry.Comment)
//	}
type GetVersionHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetVersionHistoryQuery creates a query for an order's ledger.
func NewGetVersionHistoryQuery(orderID kernel.UUID) (GetVersionHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetVersionHistoryQuery{}, err
	}

	return GetVersionHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVersionHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetVersionHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose ledger is read.
func (q GetVersionHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetVersionHistoryQueryResponse is one ledger entry in the read model.
type GetVersionHistoryQueryResponse struct {
	Version         int
	CreatedAt       time.Time
	ActorID         kernel.UUID
	ChangeRequestID *kernel.UUID
	Comment         string
	Snapshot        order.Snapshot
}
