package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRollbackVersionCommandIsNotConstructed = errors.New(
	"RollbackVersionCommand must be created via NewRollbackVersionCommand constructor",
)

// RollbackVersionCommand represents a request to restore an order's content
// to an earlier ledger version.
type RollbackVersionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	targetVersion int
	reason        string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewRollbackVersionCommand creates a command to roll an order back to the
// given ledger version. A reason is mandatory; rollbacks are audited.
func NewRollbackVersionCommand(
	orderID kernel.UUID,
	targetVersion int,
	reason string,
	actorID kernel.UUID,
) (RollbackVersionCommand, error) {
	cmd := RollbackVersionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetVersion(targetVersion),
		cmd.setReason(reason),
		cmd.setActorID(actorID),
	); err != nil {
		return RollbackVersionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RollbackVersionCommand) Validate() error {
	return c.guard.Validate(ErrRollbackVersionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to roll back.
func (c RollbackVersionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetVersion returns the ledger version whose snapshot is restored.
func (c RollbackVersionCommand) TargetVersion() int {
	return c.targetVersion
}

// Reason returns the stated reason for the rollback.
func (c RollbackVersionCommand) Reason() string {
	return c.reason
}

// ActorID returns the identifier of the requesting actor.
func (c RollbackVersionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RollbackVersionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RollbackVersionCommand) setTargetVersion(targetVersion int) error {
	if targetVersion < 0 {
		return errs.NewValueIsOutOfRangeError("targetVersion", targetVersion, 0, nil)
	}

	c.targetVersion = targetVersion
	return nil
}

func (c *RollbackVersionCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *RollbackVersionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
