// Package versionrepo persists the append-only order version ledger.
// The composite (order_id, version) key is what serializes concurrent appends:
// the losing writer's insert violates it and surfaces as a conflict.
package versionrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"

	"github.com/google/uuid"
)

// VersionDTO represents one ledger entry row. The composite primary key is
// the conflict detector: a losing concurrent append violates it.
type VersionDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version         int       `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt       time.Time
	ActorID         uuid.UUID  `gorm:"type:uuid"`
	ChangeRequestID *uuid.UUID `gorm:"type:uuid"`
	Comment         string
	Snapshot        []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for ledger entries.
func (VersionDTO) TableName() string {
	return "order_versions"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *version.Entry) (VersionDTO, error) {
	snapshot, err := json.Marshal(entry.Snapshot())
	if err != nil {
		return VersionDTO{}, err
	}

	var changeRequestID *uuid.UUID
	if id := entry.ChangeRequestID(); id != nil {
		raw := id.Bytes()
		changeRequestID = &raw
	}

	return VersionDTO{
		OrderID:         entry.OrderID().Bytes(),
		Version:         entry.Version(),
		CreatedAt:       entry.CreatedAt(),
		ActorID:         entry.ActorID().Bytes(),
		ChangeRequestID: changeRequestID,
		Comment:         entry.Comment(),
		Snapshot:        snapshot,
	}, nil
}

// toDomain converts a database row back to a ledger entry.
func toDomain(dto VersionDTO) (*version.Entry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var changeRequestID *kernel.UUID
	if dto.ChangeRequestID != nil {
		crID, crErr := kernel.UUIDFromBytes((*dto.ChangeRequestID)[:])
		if crErr != nil {
			return nil, crErr
		}

		changeRequestID = &crID
	}

	var snapshot order.Snapshot
	if err = json.Unmarshal(dto.Snapshot, &snapshot); err != nil {
		return nil, err
	}

	entry, err := version.NewEntry(
		orderID,
		dto.Version,
		dto.CreatedAt,
		actorID,
		snapshot,
		changeRequestID,
		dto.Comment,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
