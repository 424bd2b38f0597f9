package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// EscalateStalledOrdersCommand triggers a sweep over all active orders,
// escalating every order that has overstayed its current stage's time budget.
// This batch operation only notifies and journals; it never mutates order state.
//
// Example:
//
//	cmd := NewEscalateStalledOrdersCommand()
//	handler := NewEscalateStalledOrdersCommandHandler(uowFactory, notifier, journal, 0, logger)
//
//	// Run periodically from the scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Stall sweep failed: %v", err)
//	}
type EscalateStalledOrdersCommand struct {
	guard guard.ConstructorGuard
}

var ErrEscalateStalledOrdersCommandIsNotConstructed = errors.New(
	"EscalateStalledOrdersCommand must be created via NewEscalateStalledOrdersCommand constructor",
)

// NewEscalateStalledOrdersCommand creates a command to trigger a stall sweep.
// This is a parameterless command that processes all active orders.
func NewEscalateStalledOrdersCommand() EscalateStalledOrdersCommand {
	command := EscalateStalledOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrEscalateStalledOrdersCommandIsNotConstructed if validation fails.
func (c *EscalateStalledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateStalledOrdersCommandIsNotConstructed)
}
