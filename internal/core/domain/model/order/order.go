package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsTerminal is returned when a status change is attempted on an
	// archived or cancelled order.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Order is the aggregate root tracking a shipment through the fulfillment
// pipeline.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty human-readable number
//   - Status is always one of the declared states
//   - Status only changes via MoveTo, invoked after the transition guard allowed it
//   - Terminal orders (Archive, Cancelled) never change status again
//
// The aggregate uses private fields and constructor validation to keep these
// invariants; content changes (addresses, items, totals) are not stored here
// but in the version ledger.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, e.g. "BR-1"
	number string

	// status is the current state in the fulfillment lifecycle
	status Status

	// ownerRole is the role that owns the order at its current stage
	ownerRole Role

	// assignedTo references the actor currently responsible, nil if unassigned
	assignedTo *kernel.UUID

	// statusChangedAt is when the current status was entered; SLA elapsed time
	// is measured against it
	statusChangedAt time.Time

	// updatedAt is the last mutation timestamp
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Request status. This is the only way to
// create a valid new order; all inputs are validated.
func NewOrder(id kernel.UUID, number string, ownerRole Role, now time.Time) (*Order, error) {
	o := &Order{
		status: Request,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOwnerRole(ownerRole),
	); err != nil {
		return nil, err
	}

	o.statusChangedAt = now
	o.updatedAt = now
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any declared status and an optional assignee, but still validates
// every field so corrupt rows cannot produce an invalid aggregate.
func RestoreOrder(
	id kernel.UUID,
	number string,
	status Status,
	ownerRole Role,
	assignedTo *kernel.UUID,
	statusChangedAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setStatus(status),
		o.setOwnerRole(ownerRole),
	); err != nil {
		return nil, err
	}

	if assignedTo != nil {
		if err := assignedTo.Validate(); err != nil {
			return nil, err
		}
		o.assignedTo = assignedTo
	}

	o.statusChangedAt = statusChangedAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order was properly constructed. Call it when receiving
// aggregates across a boundary, e.g. in repositories.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// OwnerRole returns the role owning the order at its current stage.
func (o *Order) OwnerRole() Role {
	return o.ownerRole
}

// AssignedTo returns the currently responsible actor, or nil.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// StatusChangedAt returns when the current status was entered.
func (o *Order) StatusChangedAt() time.Time {
	return o.statusChangedAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TimeInStatus returns how long the order has been in its current status.
func (o *Order) TimeInStatus(now time.Time) time.Duration {
	return now.Sub(o.statusChangedAt)
}

// MoveTo changes the order's status to the given destination.
//
// The caller must have obtained the destination from the transition guard;
// MoveTo only enforces the aggregate-local invariants: the destination is a
// declared status and terminal states are never left.
func (o *Order) MoveTo(to Status, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	o.status = to
	o.statusChangedAt = now
	o.updatedAt = now
	return nil
}

// Assign hands the order to a specific actor without changing its status.
func (o *Order) Assign(actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	o.assignedTo = &actorID
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setOwnerRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	o.ownerRole = role
	return nil
}
