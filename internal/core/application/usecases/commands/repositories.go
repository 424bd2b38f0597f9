// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// VersionRepoFactory provides access to the version ledger within a transaction.
	VersionRepoFactory interface {
		VersionRepository() ports.VersionRepository
	}

	// ChangeRequestRepoFactory provides access to the change request repository
	// within a transaction.
	ChangeRequestRepoFactory interface {
		ChangeRequestRepository() ports.ChangeRequestRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LedgerUoW manages transactions spanning orders and the version ledger.
	// Used by operations that append ledger entries.
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		VersionRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// UoW manages transactions across orders, change requests, and the
	// version ledger. Used for commands that coordinate changes between
	// multiple aggregate types.
	UoW interface {
		TxManager
		OrderRepoFactory
		VersionRepoFactory
		ChangeRequestRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// GateResolver resolves the current truth value of every gate for an order.
// Satisfied by services.GateEvaluator.
type GateResolver interface {
	Resolve(ctx context.Context, orderID kernel.UUID) services.GateResults
}
