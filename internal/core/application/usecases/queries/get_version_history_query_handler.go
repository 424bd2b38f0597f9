package queries

import (
	"context"
	"encoding/json"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetVersionHistoryQueryHandler reads an order's ledger straight from the
// versions table.
type GetVersionHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetVersionHistoryQueryHandler creates a handler for ledger queries.
// Requires a GORM database connection for query execution.
func NewGetVersionHistoryQueryHandler(db *gorm.DB) GetVersionHistoryQueryHandler {
	return GetVersionHistoryQueryHandler{db: db}
}

// Handle executes the query. Entries come back ordered by version ascending;
// an order without a ledger yields an empty slice, not an error.
func (h GetVersionHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetVersionHistoryQuery,
) ([]GetVersionHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetVersionHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			created_at,
			actor_id,
			change_request_id,
			comment,
			snapshot
		FROM order_versions
		WHERE order_id = ?
		ORDER BY version
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetVersionHistoryQueryResponse
		var actorID uuid.UUID
		var changeRequestID uuid.NullUUID
		var snapshot []byte

		err = rows.Scan(
			&entry.Version,
			&entry.CreatedAt,
			&actorID,
			&changeRequestID,
			&entry.Comment,
			&snapshot,
		)
		if err != nil {
			return nil, err
		}

		entry.ActorID, err = kernel.UUIDFromBytes(actorID[:])
		if err != nil {
			return nil, err
		}

		if changeRequestID.Valid {
			crID, idErr := kernel.UUIDFromBytes(changeRequestID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			entry.ChangeRequestID = &crID
		}

		var content order.Snapshot
		if err = json.Unmarshal(snapshot, &content); err != nil {
			return nil, err
		}
		entry.Snapshot = content

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
