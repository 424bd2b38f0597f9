package services

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// Gate source contracts. Each gate is backed by exactly one external
// collaborator answering a boolean question about an order. Implementations
// live in the adapters layer.
type (
	// PaymentSource reports whether an order has been paid in full.
	PaymentSource interface {
		IsPaid(ctx context.Context, orderID kernel.UUID) (bool, error)
	}

	// ReconciliationSource reports whether received goods were reconciled
	// against the order.
	ReconciliationSource interface {
		IsReconciled(ctx context.Context, orderID kernel.UUID) (bool, error)
	}

	// DebtSource reports whether the ordering party has outstanding debt.
	DebtSource interface {
		HasOutstandingDebt(ctx context.Context, orderID kernel.UUID) (bool, error)
	}
)

// GateEvaluator resolves every known gate for an order by querying the
// backing collaborators in parallel. Resolution is fail-closed: a failing or
// unreachable collaborator resolves its gate to false and is logged, so an
// unavailable dependency can never wave a transition through. Results are
// computed fresh on every call, never cached.
type GateEvaluator struct {
	payments       PaymentSource
	reconciliation ReconciliationSource
	debts          DebtSource
	logger         *slog.Logger
}

// NewGateEvaluator creates a GateEvaluator over the three gate sources.
func NewGateEvaluator(
	payments PaymentSource,
	reconciliation ReconciliationSource,
	debts DebtSource,
	logger *slog.Logger,
) *GateEvaluator {
	return &GateEvaluator{
		payments:       payments,
		reconciliation: reconciliation,
		debts:          debts,
		logger:         logger.With("component", "gate_evaluator"),
	}
}

// Resolve returns the current truth value of every known gate for the order.
func (e *GateEvaluator) Resolve(ctx context.Context, orderID kernel.UUID) GateResults {
	results := make(GateResults, 3)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	resolve := func(gate GateName, query func() (bool, error)) {
		defer wg.Done()

		value, err := query()
		if err != nil {
			e.logger.WarnContext(ctx, "gate source failed, resolving gate to false",
				"gate", string(gate), "order_id", orderID.String(), "error", err)
			value = false
		}

		mu.Lock()
		results[gate] = value
		mu.Unlock()
	}

	wg.Add(3)
	go resolve(GatePaymentOK, func() (bool, error) {
		return e.payments.IsPaid(ctx, orderID)
	})
	go resolve(GateReconcileOK, func() (bool, error) {
		return e.reconciliation.IsReconciled(ctx, orderID)
	})
	go resolve(GateNoDebt, func() (bool, error) {
		hasDebt, err := e.debts.HasOutstandingDebt(ctx, orderID)
		return !hasDebt, err
	})
	wg.Wait()

	return results
}
