package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/gates"
	journaladapter "fulfillment/internal/adapters/out/journal"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/journalrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	gateEvaluator *services.GateEvaluator
	journal       *journaladapter.AsyncPublisher
	notifier      *notify.LogNotifier
	logger        *slog.Logger

	reescalateEvery time.Duration
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	journalBufferSize int,
	reescalateEvery time.Duration,
	logger *slog.Logger,
) CompositionRoot {
	evaluator := services.NewGateEvaluator(
		gates.NewGormPaymentSource(gormDB),
		gates.NewGormReconciliationSource(gormDB),
		gates.NewGormDebtSource(gormDB),
		logger,
	)

	// The journal store runs on the main connection, outside any unit of
	// work: audit records must not vanish with a rolled-back transaction
	// they merely observed.
	journal := journaladapter.NewAsyncPublisher(
		journalrepo.NewGormJournalStore(gormDB), journalBufferSize, logger)

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateEvaluator:   evaluator,
		journal:         journal,
		notifier:        notify.NewLogNotifier(logger),
		logger:          logger,
		reescalateEvery: reescalateEvery,
	}
}

// StartJournal begins draining published journal events to storage.
func (c *CompositionRoot) StartJournal() {
	c.journal.Start()
}

// StopJournal flushes buffered journal events and stops the worker.
func (c *CompositionRoot) StopJournal() {
	c.journal.Stop()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.gateEvaluator, c.journal)
}

func (c *CompositionRoot) CreateCreateChangeRequestCommandHandler() commands.CreateChangeRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateChangeRequestCommandHandler(f, c.journal)
}

func (c *CompositionRoot) CreateDecideChangeRequestCommandHandler() commands.DecideChangeRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDecideChangeRequestCommandHandler(f, c.journal)
}

func (c *CompositionRoot) CreateRollbackVersionCommandHandler() commands.RollbackVersionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRollbackVersionCommandHandler(f, c.journal)
}

func (c *CompositionRoot) CreateEscalateStalledOrdersCommandHandler() *commands.EscalateStalledOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEscalateStalledOrdersCommandHandler(
		f, c.notifier, c.journal, c.reescalateEvery, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderGatesQueryHandler() queries.GetOrderGatesQueryHandler {
	return queries.NewGetOrderGatesQueryHandler(c.gateEvaluator)
}

func (c *CompositionRoot) CreateGetVersionHistoryQueryHandler() queries.GetVersionHistoryQueryHandler {
	return queries.NewGetVersionHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChangeRequestsQueryHandler() queries.GetChangeRequestsQueryHandler {
	return queries.NewGetChangeRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJournalQueryHandler() queries.GetJournalQueryHandler {
	return queries.NewGetJournalQueryHandler(journalrepo.NewGormJournalStore(c.gormDB))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
