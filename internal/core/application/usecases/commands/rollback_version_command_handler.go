package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/ports"
)

// RollbackVersionCommandHandler restores an order's content to an earlier
// ledger version by appending the target's snapshot as a new tip. History is
// never rewritten; a rollback is just one more version whose content happens
// to repeat an old one.
type RollbackVersionCommandHandler struct {
	uowFactory LedgerUoWFactory
	journal    ports.JournalPublisher
}

// NewRollbackVersionCommandHandler creates a handler for ledger rollbacks.
func NewRollbackVersionCommandHandler(
	uowFactory LedgerUoWFactory,
	journal ports.JournalPublisher,
) RollbackVersionCommandHandler {
	return RollbackVersionCommandHandler{
		uowFactory: uowFactory,
		journal:    journal,
	}
}

// Handle processes the rollback. Returns version.ErrVersionNotFound when the
// target version is absent and version.ErrVersionConflict when a concurrent
// writer took the tip first.
func (h RollbackVersionCommandHandler) Handle(ctx context.Context, cmd RollbackVersionCommand) error {
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

	versionRepo := uow.VersionRepository()

	now := time.Now().UTC()
	if err := ensureLedgerSeeded(ctx, versionRepo, cmd.OrderID(), cmd.ActorID(), now); err != nil {
		return err
	}

	target, err := versionRepo.Get(ctx, cmd.OrderID(), cmd.TargetVersion())
	if err != nil {
		return err
	}

	tip, err := versionRepo.GetTip(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	entry, err := tip.Next(now, cmd.ActorID(), target.Snapshot(), nil, cmd.Reason())
	if err != nil {
		return err
	}

	if err = versionRepo.Append(ctx, &entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.journal.Publish(journal.NewEvent(journal.EventRollback, cmd.OrderID(), &actorID,
		map[string]any{
			"target_version": cmd.TargetVersion(),
			"new_version":    entry.Version(),
			"reason":         cmd.Reason(),
		}, now))

	return nil
}
