// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status for the stall sweep and by number for business lookups.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number          string     `gorm:"uniqueIndex"`
	Status          int        `gorm:"index"`
	OwnerRole       int
	AssignedTo      *uuid.UUID `gorm:"type:uuid"`
	StatusChangedAt time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var assignedTo *uuid.UUID
	if id := aggregate.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Number:          aggregate.Number(),
		Status:          int(aggregate.Status()),
		OwnerRole:       int(aggregate.OwnerRole()),
		AssignedTo:      assignedTo,
		StatusChangedAt: aggregate.StatusChangedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		actorID, actorErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if actorErr != nil {
			return nil, actorErr
		}

		assignedTo = &actorID
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Status(dto.Status),
		order.Role(dto.OwnerRole),
		assignedTo,
		dto.StatusChangedAt,
		dto.UpdatedAt,
	)
}
