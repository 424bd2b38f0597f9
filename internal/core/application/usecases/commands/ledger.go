package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"
	"fulfillment/internal/core/ports"
)

// seedLedger appends version 0 of an order's ledger.
func seedLedger(
	ctx context.Context,
	repo ports.VersionRepository,
	orderID kernel.UUID,
	actorID kernel.UUID,
	snapshot order.Snapshot,
	now time.Time,
) error {
	entry, err := version.NewEntry(orderID, 0, now, actorID, snapshot, nil, "initial")
	if err != nil {
		return err
	}

	return repo.Append(ctx, &entry)
}

// ensureLedgerSeeded seeds version 0 with a pristine snapshot when the order
// has no ledger yet. Orders registered through the API are seeded at
// creation; this covers orders imported behind the service's back. A seed
// race with a concurrent accessor loses to the unique version constraint and
// is treated as already seeded.
func ensureLedgerSeeded(
	ctx context.Context,
	repo ports.VersionRepository,
	orderID kernel.UUID,
	actorID kernel.UUID,
	now time.Time,
) error {
	_, err := repo.GetTip(ctx, orderID)
	if errors.Is(err, version.ErrVersionNotFound) {
		err = seedLedger(ctx, repo, orderID, actorID, order.Snapshot{}, now)
		if errors.Is(err, version.ErrVersionConflict) {
			return nil
		}
		return err
	}

	return err
}
