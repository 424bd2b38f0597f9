package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler moves orders along the lifecycle state
// machine. Resolves gates fresh, asks the pure guard for a verdict, and only
// then persists the new status. The journal entry is published after commit
// and can never fail the command.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, gates, journal)
//	cmd, _ := NewTransitionOrderCommand(orderID, services.TransitionReceiveFinish, actorID, order.RoleAdmin)
//	err := handler.Handle(ctx, cmd)
//	var gateErr *services.GateRequiredError
//	switch {
//	case errors.As(err, &gateErr):
//	    log.Printf("blocked on gates: %v", gateErr.Missing)
//	case errors.Is(err, services.ErrTransitionForbidden):
//	    log.Println("role may not trigger this transition")
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gates      GateResolver
	journal    ports.JournalPublisher
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gates GateResolver,
	journal ports.JournalPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		gates:      gates,
		journal:    journal,
	}
}

// Handle processes the transition command. Gate resolution happens on every
// call, before the guard runs; stale gate values can never authorize a
// transition.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	gateResults := h.gates.Resolve(ctx, cmd.OrderID())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()

	to, err := services.NewTransitionGuard().CanTransition(
		aggregate, cmd.Key(), cmd.ActorRole(), gateResults)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.MoveTo(to, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.journal.Publish(journal.NewEvent(journal.EventTransition, cmd.OrderID(), &actorID,
		map[string]string{
			"key":  string(cmd.Key()),
			"from": from.String(),
			"to":   to.String(),
			"role": cmd.ActorRole().String(),
		}, now))

	return nil
}
