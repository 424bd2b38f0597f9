package crrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChangeRequestRepository implements ChangeRequestRepository using GORM.
type GormChangeRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChangeRequestRepository creates a new GORM change request repository.
func NewGormChangeRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormChangeRequestRepository {
	return &GormChangeRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new change request to the database.
func (r *GormChangeRequestRepository) Add(ctx context.Context, aggregate *changerequest.ChangeRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing change request to the database.
func (r *GormChangeRequestRepository) Update(ctx context.Context, aggregate *changerequest.ChangeRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ChangeRequestDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a change request by ID.
func (r *GormChangeRequestRepository) Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChangeRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("change request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder retrieves every change request filed against an order, newest first.
func (r *GormChangeRequestRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*changerequest.ChangeRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChangeRequestDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*changerequest.ChangeRequest, 0, len(dtos))
	for _, dto := range dtos {
		cr, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, cr)
	}

	return requests, nil
}
