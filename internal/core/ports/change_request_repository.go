package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
)

// ChangeRequestRepository defines the persistence contract for change
// request aggregates.
type ChangeRequestRepository interface {
	// Add persists a new change request aggregate to storage.
	Add(ctx context.Context, aggregate *changerequest.ChangeRequest) error

	// Update persists changes to an existing change request aggregate.
	Update(ctx context.Context, aggregate *changerequest.ChangeRequest) error

	// Get retrieves a change request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error)

	// ListByOrder retrieves every change request filed against an order,
	// newest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*changerequest.ChangeRequest, error)
}
