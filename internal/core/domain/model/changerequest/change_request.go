package changerequest

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrChangeRequestIsNotConstructed is returned for instances that bypassed
	// the constructors.
	ErrChangeRequestIsNotConstructed = errors.New(
		"ChangeRequest must be created via NewChangeRequest or RestoreChangeRequest")

	// ErrCreatorForbidden is returned when the creating role may not propose
	// changes. Scheduler-driven system actors never author change requests.
	ErrCreatorForbidden = errors.New("role is not allowed to create change requests")

	// ErrChangeRequestNotPending is returned when a decision is attempted on a
	// request that is not awaiting one.
	ErrChangeRequestNotPending = errors.New("change request is not pending")

	// ErrChangeRequestNotApproved is returned when an apply is attempted
	// without a preceding approval.
	ErrChangeRequestNotApproved = errors.New("change request is not approved")
)

// creatorRoles are the roles allowed to author change requests.
var creatorRoles = order.RoleSet{order.RoleCustomer, order.RoleAdmin, order.RoleSuperAdmin}

// ChangeRequest is the aggregate root for a proposed bundle of field edits
// against a specific ledger version of an order.
//
// Invariants:
//   - Edits are ordered and validated; the list is never empty
//   - Every decision is appended to the approval trail
//   - Only a pending request can be decided; only an approved one applied
//   - Applied and Rejected are terminal; applied requests are immutable
type ChangeRequest struct {
	id            kernel.UUID
	orderID       kernel.UUID
	status        Status
	rationale     string
	edits         []FieldEdit
	approvals     []Approval
	baseVersion   int
	createdBy     kernel.UUID
	createdByRole order.Role
	createdAt     time.Time
	appliedAt     *time.Time
	rejectedAt    *time.Time

	guard guard.ConstructorGuard
}

// NewChangeRequest creates a change request in Pending status. The creating
// role must be one of Customer, Admin, or SuperAdmin; edits are validated in
// declaration order.
func NewChangeRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	rationale string,
	edits []FieldEdit,
	baseVersion int,
	createdBy kernel.UUID,
	createdByRole order.Role,
	now time.Time,
) (*ChangeRequest, error) {
	cr := &ChangeRequest{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cr.setID(id),
		cr.setOrderID(orderID),
		cr.setRationale(rationale),
		cr.setEdits(edits),
		cr.setBaseVersion(baseVersion),
		cr.setCreatedBy(createdBy, createdByRole),
	); err != nil {
		return nil, err
	}

	if !creatorRoles.Contains(createdByRole) {
		return nil, ErrCreatorForbidden
	}

	cr.createdAt = now
	return cr, nil
}

// RestoreChangeRequest reconstructs a change request from persistence,
// accepting any declared status and a pre-existing approval trail.
func RestoreChangeRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	rationale string,
	edits []FieldEdit,
	approvals []Approval,
	baseVersion int,
	createdBy kernel.UUID,
	createdByRole order.Role,
	createdAt time.Time,
	appliedAt *time.Time,
	rejectedAt *time.Time,
) (*ChangeRequest, error) {
	cr := &ChangeRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cr.setID(id),
		cr.setOrderID(orderID),
		status.Validate(),
		cr.setRationale(rationale),
		cr.setEdits(edits),
		cr.setBaseVersion(baseVersion),
		cr.setCreatedBy(createdBy, createdByRole),
	); err != nil {
		return nil, err
	}

	cr.status = status
	cr.approvals = append(cr.approvals, approvals...)
	cr.createdAt = createdAt
	cr.appliedAt = appliedAt
	cr.rejectedAt = rejectedAt
	return cr, nil
}

// Validate ensures the change request was properly constructed.
func (cr *ChangeRequest) Validate() error {
	if cr == nil {
		return ErrChangeRequestIsNotConstructed
	}
	return cr.guard.Validate(ErrChangeRequestIsNotConstructed)
}

// ID returns the change request identifier.
func (cr *ChangeRequest) ID() kernel.UUID {
	return cr.id
}

// OrderID returns the order the request targets.
func (cr *ChangeRequest) OrderID() kernel.UUID {
	return cr.orderID
}

// Status returns the current lifecycle status.
func (cr *ChangeRequest) Status() Status {
	return cr.status
}

// Rationale returns the creator's justification.
func (cr *ChangeRequest) Rationale() string {
	return cr.rationale
}

// Edits returns the ordered edit list. The slice is a copy; edits themselves
// are immutable values.
func (cr *ChangeRequest) Edits() []FieldEdit {
	out := make([]FieldEdit, len(cr.edits))
	copy(out, cr.edits)
	return out
}

// Approvals returns the recorded decision trail in order.
func (cr *ChangeRequest) Approvals() []Approval {
	out := make([]Approval, len(cr.approvals))
	copy(out, cr.approvals)
	return out
}

// BaseVersion returns the ledger version the edits were computed against.
func (cr *ChangeRequest) BaseVersion() int {
	return cr.baseVersion
}

// CreatedBy returns the creating actor.
func (cr *ChangeRequest) CreatedBy() kernel.UUID {
	return cr.createdBy
}

// CreatedByRole returns the creating actor's role.
func (cr *ChangeRequest) CreatedByRole() order.Role {
	return cr.createdByRole
}

// CreatedAt returns the creation timestamp.
func (cr *ChangeRequest) CreatedAt() time.Time {
	return cr.createdAt
}

// AppliedAt returns when the request was applied, or nil.
func (cr *ChangeRequest) AppliedAt() *time.Time {
	return cr.appliedAt
}

// RejectedAt returns when the request was rejected, or nil.
func (cr *ChangeRequest) RejectedAt() *time.Time {
	return cr.rejectedAt
}

// RecordDecision appends an approval record to the trail and advances the
// status: approve moves Pending to Approved, reject moves Pending to
// Rejected. The trail grows regardless of outcome; deciding a non-pending
// request fails without touching it.
func (cr *ChangeRequest) RecordDecision(approval Approval) error {
	if cr.status != StatusPending {
		return ErrChangeRequestNotPending
	}

	cr.approvals = append(cr.approvals, approval)

	if approval.Decision == DecisionReject {
		cr.status = StatusRejected
		at := approval.DecidedAt
		cr.rejectedAt = &at
		return nil
	}

	cr.status = StatusApproved
	return nil
}

// MarkApplied finalizes an approved request after its edits produced a ledger
// version.
func (cr *ChangeRequest) MarkApplied(now time.Time) error {
	if cr.status != StatusApproved {
		return ErrChangeRequestNotApproved
	}

	cr.status = StatusApplied
	cr.appliedAt = &now
	return nil
}

func (cr *ChangeRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	cr.id = id
	return nil
}

func (cr *ChangeRequest) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	cr.orderID = orderID
	return nil
}

func (cr *ChangeRequest) setRationale(rationale string) error {
	if rationale == "" {
		return errs.NewValueIsRequiredError("rationale")
	}
	cr.rationale = rationale
	return nil
}

func (cr *ChangeRequest) setEdits(edits []FieldEdit) error {
	if len(edits) == 0 {
		return errs.NewValueIsRequiredError("edits")
	}

	validated := make([]FieldEdit, 0, len(edits))
	for _, e := range edits {
		if e == nil {
			return errs.NewValueIsRequiredError("edit")
		}
		if err := e.Validate(); err != nil {
			return err
		}
		validated = append(validated, e)
	}

	cr.edits = validated
	return nil
}

func (cr *ChangeRequest) setBaseVersion(baseVersion int) error {
	if baseVersion < 0 {
		return errs.NewVersionIsInvalidError("baseVersion")
	}
	cr.baseVersion = baseVersion
	return nil
}

func (cr *ChangeRequest) setCreatedBy(createdBy kernel.UUID, role order.Role) error {
	if err := errors.Join(createdBy.Validate(), role.Validate()); err != nil {
		return err
	}
	cr.createdBy = createdBy
	cr.createdByRole = role
	return nil
}
