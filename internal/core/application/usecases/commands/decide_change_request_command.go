package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrDecideChangeRequestCommandIsNotConstructed = errors.New(
	"DecideChangeRequestCommand must be created via NewDecideChangeRequestCommand constructor",
)

// DecideChangeRequestCommand represents an approve-or-reject verdict on a
// pending change request.
type DecideChangeRequestCommand struct { //nolint:recvcheck //using for validation
	changeRequestID kernel.UUID
	decision        changerequest.Decision
	actorID         kernel.UUID
	actorRole       order.Role
	comment         string

	guard guard.ConstructorGuard
}

// NewDecideChangeRequestCommand creates a command carrying a decision on a
// change request. The comment is optional.
func NewDecideChangeRequestCommand(
	changeRequestID kernel.UUID,
	decision changerequest.Decision,
	actorID kernel.UUID,
	actorRole order.Role,
	comment string,
) (DecideChangeRequestCommand, error) {
	cmd := DecideChangeRequestCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setChangeRequestID(changeRequestID),
		cmd.setDecision(decision),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return DecideChangeRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrDecideChangeRequestCommandIsNotConstructed)
}

// ChangeRequestID returns the identifier of the change request to decide.
func (c DecideChangeRequestCommand) ChangeRequestID() kernel.UUID {
	return c.changeRequestID
}

// Decision returns the verdict.
func (c DecideChangeRequestCommand) Decision() changerequest.Decision {
	return c.decision
}

// ActorID returns the identifier of the deciding actor.
func (c DecideChangeRequestCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor decides under.
func (c DecideChangeRequestCommand) ActorRole() order.Role {
	return c.actorRole
}

// Comment returns the optional decision comment.
func (c DecideChangeRequestCommand) Comment() string {
	return c.comment
}

func (c *DecideChangeRequestCommand) setChangeRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.changeRequestID = id
	return nil
}

func (c *DecideChangeRequestCommand) setDecision(decision changerequest.Decision) error {
	if err := decision.Validate(); err != nil {
		return err
	}

	c.decision = decision
	return nil
}

func (c *DecideChangeRequestCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
