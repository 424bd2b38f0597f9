package http

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator used for all request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// CreateOrderRequest registers a new order with its initial snapshot.
type CreateOrderRequest struct {
	Number    string          `json:"number" validate:"required"`
	OwnerRole string          `json:"ownerRole" validate:"required"`
	ActorID   string          `json:"actorId" validate:"required,uuid"`
	Snapshot  json.RawMessage `json:"snapshot" validate:"required"`
}

// TransitionRequest triggers one lifecycle transition on an order.
type TransitionRequest struct {
	Key       string `json:"key" validate:"required"`
	ActorID   string `json:"actorId" validate:"required,uuid"`
	ActorRole string `json:"actorRole" validate:"required"`
}

// CreateChangeRequestRequest files a change request against a ledger version.
type CreateChangeRequestRequest struct {
	Rationale   string          `json:"rationale" validate:"required"`
	Edits       json.RawMessage `json:"edits" validate:"required"`
	BaseVersion int             `json:"baseVersion" validate:"gte=0"`
	ActorID     string          `json:"actorId" validate:"required,uuid"`
	ActorRole   string          `json:"actorRole" validate:"required"`
}

// DecisionRequest records an approve or reject decision on a change request.
type DecisionRequest struct {
	Decision  string `json:"decision" validate:"required,oneof=Approve Reject"`
	ActorID   string `json:"actorId" validate:"required,uuid"`
	ActorRole string `json:"actorRole" validate:"required"`
	Comment   string `json:"comment"`
}

// RollbackRequest rolls an order's snapshot back to an earlier version.
type RollbackRequest struct {
	TargetVersion int    `json:"targetVersion" validate:"gte=0"`
	Reason        string `json:"reason" validate:"required"`
	ActorID       string `json:"actorId" validate:"required,uuid"`
}

// CreatedResponse returns the identifier assigned to a newly created
// resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// OrderResponse is the read model of a single order.
type OrderResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	Status          string    `json:"status"`
	OwnerRole       string    `json:"ownerRole"`
	AssignedTo      *string   `json:"assignedTo,omitempty"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GatesResponse reports the current truth value of every known gate.
type GatesResponse struct {
	Gates map[string]bool `json:"gates"`
}

// VersionResponse is one entry of an order's version history.
type VersionResponse struct {
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	ActorID         string          `json:"actorId"`
	ChangeRequestID *string         `json:"changeRequestId,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	Snapshot        json.RawMessage `json:"snapshot"`
}

// JournalEventResponse is one audit event of an order's journal.
type JournalEventResponse struct {
	ID         string          `json:"id"`
	OccurredAt time.Time       `json:"occurredAt"`
	EventType  string          `json:"eventType"`
	ActorID    *string         `json:"actorId,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// ChangeRequestResponse is the read model of one change request.
type ChangeRequestResponse struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Rationale     string          `json:"rationale"`
	BaseVersion   int             `json:"baseVersion"`
	CreatedByRole string          `json:"createdByRole"`
	CreatedAt     time.Time       `json:"createdAt"`
	AppliedAt     *time.Time      `json:"appliedAt,omitempty"`
	RejectedAt    *time.Time      `json:"rejectedAt,omitempty"`
	Edits         json.RawMessage `json:"edits"`
	Approvals     json.RawMessage `json:"approvals"`
}
