package journalrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormJournalStore implements JournalStore using GORM. It runs on the main
// connection, outside any unit of work: journal writes must not extend
// command transactions.
type GormJournalStore struct {
	db *gorm.DB
}

// NewGormJournalStore creates a new GORM journal store.
func NewGormJournalStore(db *gorm.DB) *GormJournalStore {
	return &GormJournalStore{db: db}
}

// Append persists a single journal event.
func (s *GormJournalStore) Append(ctx context.Context, event journal.Event) error {
	dto := fromDomain(event)
	return s.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder retrieves an order's journal ordered by occurrence time ascending.
func (s *GormJournalStore) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]journal.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]journal.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
