package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order with its
// initial content. The content becomes version 0 of the order's ledger.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	number    string
	ownerRole order.Role
	actorID   kernel.UUID
	snapshot  order.Snapshot

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	ownerRole order.Role,
	actorID kernel.UUID,
	snapshot order.Snapshot,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		snapshot: snapshot.Clone(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setOwnerRole(ownerRole),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// OwnerRole returns the role that owns the order.
func (c CreateOrderCommand) OwnerRole() order.Role {
	return c.ownerRole
}

// ActorID returns the identifier of the registering actor.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Snapshot returns the order's initial content.
func (c CreateOrderCommand) Snapshot() order.Snapshot {
	return c.snapshot.Clone()
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setOwnerRole(ownerRole order.Role) error {
	if err := ownerRole.Validate(); err != nil {
		return err
	}

	c.ownerRole = ownerRole
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
