// Package crrepo persists change request aggregates. Edits and the approval
// trail are stored as JSONB documents; the closed edit variant set is decoded
// through the domain's own envelope codec, so an unknown kind in storage
// fails loudly at load time.
package crrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// ChangeRequestDTO represents the database structure for change requests.
type ChangeRequestDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Status        int
	Rationale     string
	Edits         []byte `gorm:"type:jsonb"`
	Approvals     []byte `gorm:"type:jsonb"`
	BaseVersion   int
	CreatedBy     uuid.UUID `gorm:"type:uuid"`
	CreatedByRole int
	CreatedAt     time.Time
	AppliedAt     *time.Time
	RejectedAt    *time.Time
}

// TableName specifies the database table name for change requests.
func (ChangeRequestDTO) TableName() string {
	return "change_requests"
}

// fromDomain converts a change request aggregate to its database representation.
func fromDomain(cr *changerequest.ChangeRequest) (ChangeRequestDTO, error) {
	edits, err := changerequest.MarshalEdits(cr.Edits())
	if err != nil {
		return ChangeRequestDTO{}, err
	}

	approvals, err := json.Marshal(cr.Approvals())
	if err != nil {
		return ChangeRequestDTO{}, err
	}

	return ChangeRequestDTO{
		ID:            cr.ID().Bytes(),
		OrderID:       cr.OrderID().Bytes(),
		Status:        int(cr.Status()),
		Rationale:     cr.Rationale(),
		Edits:         edits,
		Approvals:     approvals,
		BaseVersion:   cr.BaseVersion(),
		CreatedBy:     cr.CreatedBy().Bytes(),
		CreatedByRole: int(cr.CreatedByRole()),
		CreatedAt:     cr.CreatedAt(),
		AppliedAt:     cr.AppliedAt(),
		RejectedAt:    cr.RejectedAt(),
	}, nil
}

// toDomain converts a database row back to a change request aggregate.
func toDomain(dto ChangeRequestDTO) (*changerequest.ChangeRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	edits, err := changerequest.UnmarshalEdits(dto.Edits)
	if err != nil {
		return nil, err
	}

	var approvals []changerequest.Approval
	if len(dto.Approvals) > 0 {
		if err = json.Unmarshal(dto.Approvals, &approvals); err != nil {
			return nil, err
		}
	}

	return changerequest.RestoreChangeRequest(
		id,
		orderID,
		changerequest.Status(dto.Status),
		dto.Rationale,
		edits,
		approvals,
		dto.BaseVersion,
		createdBy,
		order.Role(dto.CreatedByRole),
		dto.CreatedAt,
		dto.AppliedAt,
		dto.RejectedAt,
	)
}
