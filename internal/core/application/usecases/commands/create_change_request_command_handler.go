package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateChangeRequestCommandHandler files change requests against orders.
// The order must still be active, the creator's role must be allowed to file,
// and the base version the edits refer to must exist in the ledger.
type CreateChangeRequestCommandHandler struct {
	uowFactory UoWFactory
	journal    ports.JournalPublisher
}

// NewCreateChangeRequestCommandHandler creates a handler for filing change requests.
func NewCreateChangeRequestCommandHandler(
	uowFactory UoWFactory,
	journal ports.JournalPublisher,
) CreateChangeRequestCommandHandler {
	return CreateChangeRequestCommandHandler{
		uowFactory: uowFactory,
		journal:    journal,
	}
}

// Handle processes the command. Returns order.ErrOrderIsTerminal when the
// order already reached a terminal state, changerequest.ErrCreatorForbidden
// when the role may not file, and version.ErrVersionNotFound when the base
// version is absent from the ledger.
func (h CreateChangeRequestCommandHandler) Handle(ctx context.Context, cmd CreateChangeRequestCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.Status().IsTerminal() {
		return order.ErrOrderIsTerminal
	}

	now := time.Now().UTC()
	if err = ensureLedgerSeeded(ctx, uow.VersionRepository(), cmd.OrderID(), cmd.ActorID(), now); err != nil {
		return err
	}

	if _, err = uow.VersionRepository().Get(ctx, cmd.OrderID(), cmd.BaseVersion()); err != nil {
		return err
	}

	cr, err := changerequest.NewChangeRequest(
		cmd.ChangeRequestID(),
		cmd.OrderID(),
		cmd.Rationale(),
		cmd.Edits(),
		cmd.BaseVersion(),
		cmd.ActorID(),
		cmd.ActorRole(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.ChangeRequestRepository().Add(ctx, cr); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Filing is the note to the approvers; the outcome lands later as a
	// cr_decision event.
	actorID := cmd.ActorID()
	h.journal.Publish(journal.NewEvent(journal.EventRACINote, cmd.OrderID(), &actorID,
		map[string]any{
			"change_request_id": cmd.ChangeRequestID().String(),
			"base_version":      cmd.BaseVersion(),
			"role":              cmd.ActorRole().String(),
		}, now))

	return nil
}
