// Package version contains the immutable order-version ledger entry. The
// ledger is a strictly increasing, gap-free sequence of full order snapshots
// per order; "current content" is always the snapshot at the highest version.
// Rollback appends an old snapshot as a new version and never rewrites
// history.
package version

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrVersionNotFound is returned when a referenced version does not exist
	// in the ledger.
	ErrVersionNotFound = errors.New("version not found")

	// ErrVersionConflict is returned when a concurrent append won the race for
	// the same version number. The caller may re-read the tip and retry.
	ErrVersionConflict = errors.New("ledger append conflict")
)

// Entry is one immutable row of the version ledger. Version 0 is the pristine
// snapshot seeded on first access; every content change appends exactly one
// new entry.
type Entry struct {
	orderID         kernel.UUID
	version         int
	createdAt       time.Time
	actorID         kernel.UUID
	snapshot        order.Snapshot
	changeRequestID *kernel.UUID
	comment         string
}

// NewEntry creates a validated ledger entry. The change request id is nil for
// the seed entry and for rollbacks.
func NewEntry(
	orderID kernel.UUID,
	versionN int,
	createdAt time.Time,
	actorID kernel.UUID,
	snapshot order.Snapshot,
	changeRequestID *kernel.UUID,
	comment string,
) (Entry, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return Entry{}, err
	}

	if versionN < 0 {
		return Entry{}, errs.NewVersionIsInvalidError("version")
	}

	if changeRequestID != nil {
		if err := changeRequestID.Validate(); err != nil {
			return Entry{}, err
		}
	}

	return Entry{
		orderID:         orderID,
		version:         versionN,
		createdAt:       createdAt,
		actorID:         actorID,
		snapshot:        snapshot,
		changeRequestID: changeRequestID,
		comment:         comment,
	}, nil
}

// OrderID returns the order this entry belongs to.
func (e Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Version returns the entry's position in the ledger.
func (e Entry) Version() int {
	return e.version
}

// CreatedAt returns when the entry was appended.
func (e Entry) CreatedAt() time.Time {
	return e.createdAt
}

// ActorID returns who caused the append.
func (e Entry) ActorID() kernel.UUID {
	return e.actorID
}

// Snapshot returns a deep copy of the entry's snapshot, keeping the stored
// one immutable.
func (e Entry) Snapshot() order.Snapshot {
	return e.snapshot.Clone()
}

// ChangeRequestID returns the originating change request, or nil.
func (e Entry) ChangeRequestID() *kernel.UUID {
	return e.changeRequestID
}

// Comment returns the optional annotation, e.g. a rollback reason.
func (e Entry) Comment() string {
	return e.comment
}

// Next builds the follow-up entry to this one: same order, version+1.
func (e Entry) Next(
	createdAt time.Time,
	actorID kernel.UUID,
	snapshot order.Snapshot,
	changeRequestID *kernel.UUID,
	comment string,
) (Entry, error) {
	return NewEntry(e.orderID, e.version+1, createdAt, actorID, snapshot, changeRequestID, comment)
}
