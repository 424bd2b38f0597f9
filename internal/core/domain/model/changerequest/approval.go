package changerequest

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Decision is the outcome of a single approval round.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionApprove
	DecisionReject
)

// Validate checks that the Decision is either approve or reject.
func (d Decision) Validate() error {
	if d != DecisionApprove && d != DecisionReject {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

// String returns the human-readable name of the decision. Implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "Approve"
	case DecisionReject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// DecisionFromString parses a decision name as supplied by external callers.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "Approve":
		return DecisionApprove, nil
	case "Reject":
		return DecisionReject, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%q is not a valid decision", s))
	}
}

// Approval is one recorded decision on a change request. Every decision is
// appended to the trail regardless of outcome, so multi-approver flows stay
// representable even though current policy applies on the first approve.
type Approval struct {
	ActorID   kernel.UUID `json:"actorId"`
	Role      order.Role  `json:"role"`
	Decision  Decision    `json:"decision"`
	Comment   string      `json:"comment,omitempty"`
	DecidedAt time.Time   `json:"decidedAt"`
}

// NewApproval creates a validated approval record.
func NewApproval(
	actorID kernel.UUID,
	role order.Role,
	decision Decision,
	comment string,
	decidedAt time.Time,
) (Approval, error) {
	if err := errors.Join(
		actorID.Validate(),
		role.Validate(),
		decision.Validate(),
	); err != nil {
		return Approval{}, err
	}

	return Approval{
		ActorID:   actorID,
		Role:      role,
		Decision:  decision,
		Comment:   comment,
		DecidedAt: decidedAt,
	}, nil
}
