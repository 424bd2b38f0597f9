package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers new orders. The order starts its
// lifecycle in the request stage and its initial content is appended as
// version 0 of the ledger, atomically with the order itself.
type CreateOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory LedgerUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order registration command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.OwnerRole(), now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = seedLedger(ctx, uow.VersionRepository(), cmd.OrderID(), cmd.ActorID(), cmd.Snapshot(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
