package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stalledOrder restores an order that entered its status long enough ago to
// breach every stage budget.
func stalledOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	enteredAt := time.Now().UTC().Add(-30 * 24 * time.Hour)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "BR-1", status, order.RoleCustomer, nil, enteredAt, enteredAt)
	require.NoError(t, err)
	return o
}

func freshOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "BR-2", status, order.RoleCustomer, nil, now, now)
	require.NoError(t, err)
	return o
}

func sweepUoW(ctx context.Context, active []*order.Order) (*MockUoW, *MockOrderUoWFactory) {
	repo := new(MockOrderRepository)
	repo.On("GetAllActive", ctx).Return(active, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	return uow, factory
}

func TestEscalateStalledOrdersCommandHandler_Handle(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("escalates breached orders and skips fresh ones", func(t *testing.T) {
		ctx := t.Context()
		stalled := stalledOrder(t, order.Pack)
		fresh := freshOrder(t, order.Receive)

		_, factory := sweepUoW(ctx, []*order.Order{stalled, fresh})

		notifier := new(MockEscalationNotifier)
		notifier.On("NotifyStalled", ctx, stalled, "SLA_PACK",
			order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin}).Return(nil).Once()

		journalRec := new(RecordingJournal)
		h := commands.NewEscalateStalledOrdersCommandHandler(factory, notifier, journalRec, 0, logger)

		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))

		notifier.AssertExpectations(t)
		require.Len(t, journalRec.events, 1)
		assert.Equal(t, journal.EventSLA, journalRec.events[0].Type)
		assert.Nil(t, journalRec.events[0].ActorID)
	})

	t.Run("zero cooldown re-escalates every sweep", func(t *testing.T) {
		ctx := t.Context()
		stalled := stalledOrder(t, order.Pack)

		notifier := new(MockEscalationNotifier)
		notifier.On("NotifyStalled", ctx, stalled, "SLA_PACK", mock.Anything).Return(nil).Twice()

		journalRec := new(RecordingJournal)

		repo := new(MockOrderRepository)
		repo.On("GetAllActive", ctx).Return([]*order.Order{stalled}, nil).Twice()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(repo)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewEscalateStalledOrdersCommandHandler(factory, notifier, journalRec, 0, logger)
		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))
		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))

		notifier.AssertExpectations(t)
		assert.Len(t, journalRec.events, 2)
	})

	t.Run("cooldown suppresses repeat escalation", func(t *testing.T) {
		ctx := t.Context()
		stalled := stalledOrder(t, order.Pack)

		notifier := new(MockEscalationNotifier)
		notifier.On("NotifyStalled", ctx, stalled, "SLA_PACK", mock.Anything).Return(nil).Once()

		repo := new(MockOrderRepository)
		repo.On("GetAllActive", ctx).Return([]*order.Order{stalled}, nil).Twice()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(repo)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow)

		journalRec := new(RecordingJournal)
		h := commands.NewEscalateStalledOrdersCommandHandler(
			factory, notifier, journalRec, time.Hour, logger)

		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))
		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))

		notifier.AssertExpectations(t)
		assert.Len(t, journalRec.events, 1)
	})

	t.Run("notifier failure skips journal but finishes the sweep", func(t *testing.T) {
		ctx := t.Context()
		first := stalledOrder(t, order.Pack)
		second := stalledOrder(t, order.Delivery)

		_, factory := sweepUoW(ctx, []*order.Order{first, second})

		notifier := new(MockEscalationNotifier)
		notifier.On("NotifyStalled", ctx, first, "SLA_PACK", mock.Anything).
			Return(errors.New("smtp down")).Once()
		notifier.On("NotifyStalled", ctx, second, "SLA_DELIVERY", mock.Anything).
			Return(nil).Once()

		journalRec := new(RecordingJournal)
		h := commands.NewEscalateStalledOrdersCommandHandler(factory, notifier, journalRec, 0, logger)

		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))

		notifier.AssertExpectations(t)
		assert.Len(t, journalRec.events, 1)
	})

	t.Run("transit breaches on target when no hard limit", func(t *testing.T) {
		ctx := t.Context()
		stalled := stalledOrder(t, order.Transit)

		_, factory := sweepUoW(ctx, []*order.Order{stalled})

		notifier := new(MockEscalationNotifier)
		notifier.On("NotifyStalled", ctx, stalled, "SLA_TRANSIT",
			order.RoleSet{order.RoleSuperAdmin}).Return(nil).Once()

		h := commands.NewEscalateStalledOrdersCommandHandler(
			factory, notifier, new(RecordingJournal), 0, logger)

		require.NoError(t, h.Handle(ctx, commands.NewEscalateStalledOrdersCommand()))
		notifier.AssertExpectations(t)
	})
}
