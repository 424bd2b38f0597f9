package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

var ErrTransitionKeyIsRequired = errors.New("transition key is required")

// TransitionOrderCommand represents a request to move an order along its
// lifecycle: which order, which transition, and who asks for it.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	key       services.TransitionKey
	actorID   kernel.UUID
	actorRole order.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to trigger a lifecycle
// transition. Validates identifiers, the transition key, and the actor role.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	key services.TransitionKey,
	actorID kernel.UUID,
	actorRole order.Role,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setKey(key),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Key returns the requested transition key.
func (c TransitionOrderCommand) Key() services.TransitionKey {
	return c.key
}

// ActorID returns the identifier of the requesting actor.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor acts under.
func (c TransitionOrderCommand) ActorRole() order.Role {
	return c.actorRole
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setKey(key services.TransitionKey) error {
	if key == "" {
		return ErrTransitionKeyIsRequired
	}

	c.key = key
	return nil
}

func (c *TransitionOrderCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
