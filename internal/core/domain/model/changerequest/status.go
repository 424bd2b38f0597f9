package changerequest

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a change request.
type Status int

const (
	// StatusUnknown is the invalid zero value.
	StatusUnknown Status = iota

	// StatusDraft is an optional entry state for requests still being composed.
	StatusDraft

	// StatusPending means the request awaits an approval decision.
	StatusPending

	// StatusApproved is the transient state between a positive decision and
	// the ledger append that applies it.
	StatusApproved

	// StatusRejected is terminal: the request was declined.
	StatusRejected

	// StatusApplied is terminal: the edits were applied and a ledger version
	// was produced. Applied requests are immutable.
	StatusApplied

	// StatusRolledBack is declared for completeness of the enumeration; the
	// engine never assigns it. A rollback is a property of a ledger version,
	// not of the change request that produced it.
	StatusRolledBack
)

func getCRStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusDraft:      "Draft",
		StatusPending:    "Pending",
		StatusApproved:   "Approved",
		StatusRejected:   "Rejected",
		StatusApplied:    "Applied",
		StatusRolledBack: "RolledBack",
	}
}

// Validate checks that the Status is one of the declared states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("change request status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getCRStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("change request status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getCRStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the change request can never change again.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusApplied
}
