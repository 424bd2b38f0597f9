package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateChangeRequestCommandIsNotConstructed = errors.New(
	"CreateChangeRequestCommand must be created via NewCreateChangeRequestCommand constructor",
)

// CreateChangeRequestCommand represents a request to file a change request
// against an order: the proposed edits, the ledger version they are based on,
// and the requesting actor.
type CreateChangeRequestCommand struct { //nolint:recvcheck //using for validation
	changeRequestID kernel.UUID
	orderID         kernel.UUID
	rationale       string
	edits           []changerequest.FieldEdit
	baseVersion     int
	actorID         kernel.UUID
	actorRole       order.Role

	guard guard.ConstructorGuard
}

// NewCreateChangeRequestCommand creates a command to file a change request.
// Validates identifiers, the actor role, every edit, and the base version.
func NewCreateChangeRequestCommand(
	changeRequestID kernel.UUID,
	orderID kernel.UUID,
	rationale string,
	edits []changerequest.FieldEdit,
	baseVersion int,
	actorID kernel.UUID,
	actorRole order.Role,
) (CreateChangeRequestCommand, error) {
	cmd := CreateChangeRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setChangeRequestID(changeRequestID),
		cmd.setOrderID(orderID),
		cmd.setRationale(rationale),
		cmd.setEdits(edits),
		cmd.setBaseVersion(baseVersion),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return CreateChangeRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateChangeRequestCommandIsNotConstructed)
}

// ChangeRequestID returns the identifier the new change request will carry.
func (c CreateChangeRequestCommand) ChangeRequestID() kernel.UUID {
	return c.changeRequestID
}

// OrderID returns the identifier of the order the request targets.
func (c CreateChangeRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rationale returns the requester's stated reason for the change.
func (c CreateChangeRequestCommand) Rationale() string {
	return c.rationale
}

// Edits returns the proposed field edits in application order.
func (c CreateChangeRequestCommand) Edits() []changerequest.FieldEdit {
	out := make([]changerequest.FieldEdit, len(c.edits))
	copy(out, c.edits)
	return out
}

// BaseVersion returns the ledger version the edits are based on.
func (c CreateChangeRequestCommand) BaseVersion() int {
	return c.baseVersion
}

// ActorID returns the identifier of the requesting actor.
func (c CreateChangeRequestCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor acts under.
func (c CreateChangeRequestCommand) ActorRole() order.Role {
	return c.actorRole
}

func (c *CreateChangeRequestCommand) setChangeRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.changeRequestID = id
	return nil
}

func (c *CreateChangeRequestCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateChangeRequestCommand) setRationale(rationale string) error {
	if rationale == "" {
		return errs.NewValueIsRequiredError("rationale")
	}

	c.rationale = rationale
	return nil
}

func (c *CreateChangeRequestCommand) setEdits(edits []changerequest.FieldEdit) error {
	if len(edits) == 0 {
		return errs.NewValueIsRequiredError("edits")
	}

	for _, edit := range edits {
		if err := edit.Validate(); err != nil {
			return err
		}
	}

	c.edits = make([]changerequest.FieldEdit, len(edits))
	copy(c.edits, edits)
	return nil
}

func (c *CreateChangeRequestCommand) setBaseVersion(baseVersion int) error {
	if baseVersion < 0 {
		return errs.NewValueIsOutOfRangeError("baseVersion", baseVersion, 0, nil)
	}

	c.baseVersion = baseVersion
	return nil
}

func (c *CreateChangeRequestCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
