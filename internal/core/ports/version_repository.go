package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/version"
)

// VersionRepository defines the persistence contract for the per-order
// version ledger. The ledger is append-only: entries are never updated or
// deleted, and version numbers per order are dense starting at zero.
type VersionRepository interface {
	// Append persists a new ledger entry. Returns version.ErrVersionConflict
	// when an entry with the same order and version number already exists,
	// which signals a lost race with a concurrent writer; callers reload the
	// tip and retry.
	Append(ctx context.Context, entry *version.Entry) error

	// Get retrieves a single entry of an order's ledger.
	// Returns version.ErrVersionNotFound when the version does not exist.
	Get(ctx context.Context, orderID kernel.UUID, versionNumber int) (*version.Entry, error)

	// GetTip retrieves the highest-numbered entry of an order's ledger.
	// Returns version.ErrVersionNotFound when the order has no entries.
	GetTip(ctx context.Context, orderID kernel.UUID) (*version.Entry, error)

	// List retrieves an order's full ledger ordered by version ascending.
	List(ctx context.Context, orderID kernel.UUID) ([]*version.Entry, error)
}
