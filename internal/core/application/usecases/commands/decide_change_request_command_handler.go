package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ErrApproverForbidden is returned when the deciding role is not accountable
// for the order's current lifecycle state.
var ErrApproverForbidden = errors.New(
	"role is not an eligible approver for the order's current state",
)

// DecideChangeRequestCommandHandler records approve/reject verdicts on
// pending change requests. Approval authority follows the order's CURRENT
// state, not the state it was in when the request was filed. An approval
// applies the edits to the snapshot at the request's base version and appends
// the result as a new ledger version; a rejection only closes the request.
// Either way the verdict lands in the approval trail.
//
// Example:
//
//	handler := NewDecideChangeRequestCommandHandler(uowFactory, journal)
//	cmd, _ := NewDecideChangeRequestCommand(crID, changerequest.DecisionApprove, actorID, order.RoleAdmin, "lgtm")
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrApproverForbidden):
//	    log.Println("actor may not decide this request")
//	case errors.Is(err, version.ErrVersionConflict):
//	    log.Println("lost a ledger race, retry")
//	}
type DecideChangeRequestCommandHandler struct {
	uowFactory UoWFactory
	journal    ports.JournalPublisher
}

// NewDecideChangeRequestCommandHandler creates a handler for change request decisions.
func NewDecideChangeRequestCommandHandler(
	uowFactory UoWFactory,
	journal ports.JournalPublisher,
) DecideChangeRequestCommandHandler {
	return DecideChangeRequestCommandHandler{
		uowFactory: uowFactory,
		journal:    journal,
	}
}

// Handle processes the decision. Returns ErrApproverForbidden when the role
// lacks authority, changerequest.ErrChangeRequestNotPending when the request
// was already decided, and version.ErrVersionConflict when a concurrent
// writer took the ledger tip first; the conflict is retryable.
func (h DecideChangeRequestCommandHandler) Handle(ctx context.Context, cmd DecideChangeRequestCommand) error {
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

	cr, err := uow.ChangeRequestRepository().Get(ctx, cmd.ChangeRequestID())
	if err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cr.OrderID())
	if err != nil {
		return err
	}

	if !services.ApproversFor(aggregate.Status()).Contains(cmd.ActorRole()) {
		return ErrApproverForbidden
	}

	now := time.Now().UTC()
	approval, err := changerequest.NewApproval(
		cmd.ActorID(), cmd.ActorRole(), cmd.Decision(), cmd.Comment(), now)
	if err != nil {
		return err
	}

	if err = cr.RecordDecision(approval); err != nil {
		return err
	}

	if cmd.Decision() == changerequest.DecisionApprove {
		if err = h.applyEdits(ctx, uow, cr, cmd, now); err != nil {
			return err
		}
	}

	if err = uow.ChangeRequestRepository().Update(ctx, cr); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.journal.Publish(journal.NewEvent(journal.EventCRDecision, cr.OrderID(), &actorID,
		map[string]string{
			"change_request_id": cr.ID().String(),
			"decision":          cmd.Decision().String(),
			"role":              cmd.ActorRole().String(),
		}, now))

	return nil
}

// applyEdits materializes an approved change request: the edits run against
// the snapshot at the request's base version and the result becomes the next
// ledger version, stamped with the request's identity.
func (h DecideChangeRequestCommandHandler) applyEdits(
	ctx context.Context,
	uow UoW,
	cr *changerequest.ChangeRequest,
	cmd DecideChangeRequestCommand,
	now time.Time,
) error {
	versionRepo := uow.VersionRepository()

	base, err := versionRepo.Get(ctx, cr.OrderID(), cr.BaseVersion())
	if err != nil {
		return err
	}

	next, err := services.NewDiffApplier().Apply(base.Snapshot(), cr.Edits())
	if err != nil {
		return err
	}

	tip, err := versionRepo.GetTip(ctx, cr.OrderID())
	if err != nil {
		return err
	}

	crID := cr.ID()
	entry, err := tip.Next(now, cmd.ActorID(), next, &crID, cr.Rationale())
	if err != nil {
		return err
	}

	if err = versionRepo.Append(ctx, &entry); err != nil {
		return err
	}

	return cr.MarkApplied(now)
}
