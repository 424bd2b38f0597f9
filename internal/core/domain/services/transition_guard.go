package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrInvalidTransition is returned when no transition rule matches the
	// requested key from the order's current status.
	ErrInvalidTransition = errors.New("no transition rule matches")

	// ErrTransitionForbidden is returned when the acting role is not in the
	// rule's allowed set.
	ErrTransitionForbidden = errors.New("role is not allowed to perform transition")

	// ErrGateRequired is the unwrap target of GateRequiredError.
	ErrGateRequired = errors.New("required gates are not satisfied")
)

// GateResults holds the resolved truth value of every known gate at the
// moment a transition was attempted. Missing entries count as false.
type GateResults map[GateName]bool

// GateRequiredError reports exactly which gates block a transition so the
// caller can show what is standing in the way.
type GateRequiredError struct {
	Key     TransitionKey
	Missing []GateName
}

func (e *GateRequiredError) Error() string {
	return fmt.Sprintf("transition %s blocked, missing gates: %v", e.Key, e.Missing)
}

func (e *GateRequiredError) Unwrap() error {
	return ErrGateRequired
}

// TransitionGuard decides whether a requested transition is allowed. It is a
// pure function of the order's current status, the static rule tables, the
// acting role, and the already-resolved gates: gate resolution happens
// strictly before the guard runs, keeping the decision deterministic.
type TransitionGuard struct{}

// NewTransitionGuard creates a TransitionGuard.
func NewTransitionGuard() TransitionGuard {
	return TransitionGuard{}
}

// CanTransition returns the destination status when the transition is
// allowed. Denials are structured: ErrInvalidTransition when no rule matches,
// ErrTransitionForbidden for a disallowed role, and a GateRequiredError
// listing every missing gate. Any single failing condition is sufficient to
// deny.
func (g TransitionGuard) CanTransition(
	o *order.Order,
	key TransitionKey,
	actorRole order.Role,
	gates GateResults,
) (order.Status, error) {
	if err := o.Validate(); err != nil {
		return order.Unknown, err
	}
	if err := actorRole.Validate(); err != nil {
		return order.Unknown, err
	}

	rule, ok := RuleFor(key, o.Status())
	if !ok {
		return order.Unknown, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, key, o.Status())
	}

	if !rule.AllowedRoles.Contains(actorRole) {
		return order.Unknown, fmt.Errorf("%w: %s may not %s", ErrTransitionForbidden, actorRole, key)
	}

	var missing []GateName
	for _, gate := range rule.RequiredGates {
		if !gates[gate] {
			missing = append(missing, gate)
		}
	}
	if len(missing) > 0 {
		return order.Unknown, &GateRequiredError{Key: key, Missing: missing}
	}

	return rule.ToState, nil
}
