package queries

import (
	"context"
	"encoding/json"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetChangeRequestsQueryHandler reads change requests straight from the
// change_requests table.
type GetChangeRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetChangeRequestsQueryHandler creates a handler for change request queries.
// Requires a GORM database connection for query execution.
func NewGetChangeRequestsQueryHandler(db *gorm.DB) GetChangeRequestsQueryHandler {
	return GetChangeRequestsQueryHandler{db: db}
}

// Handle executes the query, newest request first.
func (h GetChangeRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetChangeRequestsQuery,
) ([]GetChangeRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetChangeRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			rationale,
			base_version,
			created_by_role,
			created_at,
			applied_at,
			rejected_at,
			edits,
			approvals
		FROM change_requests
		WHERE order_id = ?
		ORDER BY created_at DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetChangeRequestsQueryResponse
		var id uuid.UUID
		var status, createdByRole int
		var edits, approvals []byte

		err = rows.Scan(
			&id,
			&status,
			&resp.Rationale,
			&resp.BaseVersion,
			&createdByRole,
			&resp.CreatedAt,
			&resp.AppliedAt,
			&resp.RejectedAt,
			&edits,
			&approvals,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.Status = changerequest.Status(status).String()
		resp.CreatedByRole = order.Role(createdByRole).String()
		resp.Edits = json.RawMessage(edits)
		resp.Approvals = json.RawMessage(approvals)

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
