package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "BR-42", order.RoleCustomer, kernel.NewUUID(), order.Snapshot{})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("requires a number", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", order.RoleCustomer, kernel.NewUUID(), order.Snapshot{})

		require.Error(t, err)
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	snapshot := order.Snapshot{Note: "fragile"}
	cmd, _ := commands.NewCreateOrderCommand(
		orderID, "BR-42", order.RoleCustomer, kernel.NewUUID(), snapshot)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	versionRepo := new(MockVersionRepository)
	versionRepo.On("Append", ctx, mock.AnythingOfType("*version.Entry")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("VersionRepository").Return(versionRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	created := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, order.Request, created.Status())
	assert.Equal(t, "BR-42", created.Number())

	seeded := versionRepo.Calls[0].Arguments.Get(1).(*version.Entry)
	assert.Equal(t, 0, seeded.Version())
	assert.True(t, seeded.Snapshot().Equal(snapshot))
	assert.Equal(t, "initial", seeded.Comment())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(new(MockLedgerUoWFactory))

	err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
