package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// GateResolver resolves the current truth value of every gate for an order.
// Satisfied by services.GateEvaluator.
type GateResolver interface {
	Resolve(ctx context.Context, orderID kernel.UUID) services.GateResults
}

// GetOrderGatesQueryHandler answers gate queries against the live gate
// sources. Values are resolved fresh on every call, matching what the
// transition guard would see.
type GetOrderGatesQueryHandler struct {
	gates GateResolver
}

// NewGetOrderGatesQueryHandler creates a handler for gate queries.
func NewGetOrderGatesQueryHandler(gates GateResolver) GetOrderGatesQueryHandler {
	return GetOrderGatesQueryHandler{gates: gates}
}

// Handle executes the query.
func (h GetOrderGatesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderGatesQuery,
) (GetOrderGatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderGatesQueryResponse{}, err
	}

	results := h.gates.Resolve(ctx, query.OrderID())

	gates := make(map[string]bool, len(results))
	for name, value := range results {
		gates[string(name)] = value
	}

	return GetOrderGatesQueryResponse{Gates: gates}, nil
}
