package versionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/version"

	"gorm.io/gorm"
)

// GormVersionRepository implements VersionRepository using GORM.
// Requires the connection to run with gorm.Config.TranslateError so a unique
// index violation arrives as gorm.ErrDuplicatedKey.
type GormVersionRepository struct {
	db *gorm.DB
}

// NewGormVersionRepository creates a new GORM version ledger repository.
func NewGormVersionRepository(db *gorm.DB) *GormVersionRepository {
	return &GormVersionRepository{db: db}
}

// Append inserts a new ledger entry. A duplicate (order_id, version) pair
// means the caller lost a tip race and maps to version.ErrVersionConflict.
func (r *GormVersionRepository) Append(ctx context.Context, entry *version.Entry) error {
	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return version.ErrVersionConflict
		}
		return err
	}

	return nil
}

// Get retrieves a single ledger entry.
func (r *GormVersionRepository) Get(ctx context.Context, orderID kernel.UUID, versionNumber int) (*version.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto VersionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND version = ?", orderID.Bytes(), versionNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, version.ErrVersionNotFound
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetTip retrieves the highest-numbered entry of an order's ledger.
func (r *GormVersionRepository) GetTip(ctx context.Context, orderID kernel.UUID) (*version.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto VersionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("version DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, version.ErrVersionNotFound
		}
		return nil, err
	}

	return toDomain(dto)
}

// List retrieves an order's full ledger ordered by version ascending.
func (r *GormVersionRepository) List(ctx context.Context, orderID kernel.UUID) ([]*version.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []VersionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("version ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*version.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
