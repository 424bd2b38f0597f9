package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is a value object
// whose transitions are governed by the static transition table in the
// services package; the aggregate only validates that a destination status is
// a declared one and that terminal states are never left.
//
// Pipeline:
//
//	Request ──> Receive ──> Pack ──> Transit ──> Delivery ──> Archive
//	    └──────────┴──────────┴─────────┴────────────┘
//	              (Cancelled from any non-terminal state)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// The zero value helps catch uninitialized Status values.
	Unknown Status = iota

	// Request is the initial status: the order has been submitted and awaits
	// acceptance by a branch.
	Request

	// Receive indicates the branch has accepted the order and is receiving
	// the goods.
	Receive

	// Pack indicates the goods are being packed for shipment.
	Pack

	// Transit indicates the shipment is on its way.
	Transit

	// Delivery indicates the shipment reached the destination branch and is
	// being handed over.
	Delivery

	// Archive is the terminal success state.
	Archive

	// Cancelled is the terminal state for orders aborted before archival.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Request:   "Request",
		Receive:   "Receive",
		Pack:      "Pack",
		Transit:   "Transit",
		Delivery:  "Delivery",
		Archive:   "Archive",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Request:   "Request",
		Receive:   "Receive",
		Pack:      "Pack",
		Transit:   "Transit",
		Delivery:  "Delivery",
		Archive:   "Archive",
		Cancelled: "Cancelled",
	}
}

// AllStatuses returns every valid status. Used by the rule tables to assert
// coverage and by read models to enumerate states.
func AllStatuses() []Status {
	return []Status{Request, Receive, Pack, Transit, Delivery, Archive, Cancelled}
}

// Validate checks that the Status is one of the declared states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as supplied by external callers.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions may leave this status.
// Terminal orders are read-only for change requests as well.
func (s Status) IsTerminal() bool {
	return s == Archive || s == Cancelled
}
