package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingChangeRequest(t *testing.T, orderID kernel.UUID) *changerequest.ChangeRequest {
	t.Helper()

	cr, err := changerequest.NewChangeRequest(
		kernel.NewUUID(), orderID, "add a line",
		someEdits(), 0, kernel.NewUUID(), order.RoleCustomer, testTime)
	require.NoError(t, err)
	return cr
}

func TestDecideChangeRequestCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cr := pendingChangeRequest(t, orderID)
	cmd, _ := commands.NewDecideChangeRequestCommand(
		cr.ID(), changerequest.DecisionApprove, kernel.NewUUID(), order.RoleAdmin, "looks right")

	crRepo := new(MockChangeRequestRepository)
	crRepo.On("Get", ctx, cr.ID()).Return(cr, nil).Once()
	crRepo.On("Update", ctx, cr).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, orderID).Return(restoredOrder(t, orderID, order.Pack), nil).Once()

	base := seedEntry(t, orderID, 0)
	tip := seedEntry(t, orderID, 3)

	versionRepo := new(MockVersionRepository)
	versionRepo.On("Get", ctx, orderID, 0).Return(base, nil).Once()
	versionRepo.On("GetTip", ctx, orderID).Return(tip, nil).Once()
	versionRepo.On("Append", ctx, mock.AnythingOfType("*version.Entry")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ChangeRequestRepository").Return(crRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("VersionRepository").Return(versionRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	journalRec := new(RecordingJournal)
	h := commands.NewDecideChangeRequestCommandHandler(factory, journalRec)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, changerequest.StatusApplied, cr.Status())
	require.NotNil(t, cr.AppliedAt())
	require.Len(t, cr.Approvals(), 1)
	assert.Equal(t, changerequest.DecisionApprove, cr.Approvals()[0].Decision)

	appended := versionRepo.Calls[2].Arguments.Get(1).(*version.Entry)
	assert.Equal(t, 4, appended.Version())
	require.NotNil(t, appended.ChangeRequestID())
	assert.True(t, appended.ChangeRequestID().IsEqual(cr.ID()))
	assert.Len(t, appended.Snapshot().Items, 1)

	require.Len(t, journalRec.events, 1)
	assert.Equal(t, journal.EventCRDecision, journalRec.events[0].Type)
}

func TestDecideChangeRequestCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cr := pendingChangeRequest(t, orderID)
	cmd, _ := commands.NewDecideChangeRequestCommand(
		cr.ID(), changerequest.DecisionReject, kernel.NewUUID(), order.RoleSuperAdmin, "no budget")

	crRepo := new(MockChangeRequestRepository)
	crRepo.On("Get", ctx, cr.ID()).Return(cr, nil).Once()
	crRepo.On("Update", ctx, cr).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, orderID).Return(restoredOrder(t, orderID, order.Pack), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ChangeRequestRepository").Return(crRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDecideChangeRequestCommandHandler(factory, new(RecordingJournal))
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, changerequest.StatusRejected, cr.Status())
	require.NotNil(t, cr.RejectedAt())
	require.Len(t, cr.Approvals(), 1)
	// No ledger version is appended on rejection.
	uow.AssertNotCalled(t, "VersionRepository")
}

func TestDecideChangeRequestCommandHandler_Handle_RACIDeny(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cr := pendingChangeRequest(t, orderID)

	// In Transit only SuperAdmin is accountable; an Admin may not decide.
	cmd, _ := commands.NewDecideChangeRequestCommand(
		cr.ID(), changerequest.DecisionApprove, kernel.NewUUID(), order.RoleAdmin, "")

	crRepo := new(MockChangeRequestRepository)
	crRepo.On("Get", ctx, cr.ID()).Return(cr, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, orderID).Return(restoredOrder(t, orderID, order.Transit), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ChangeRequestRepository").Return(crRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDecideChangeRequestCommandHandler(factory, new(RecordingJournal))
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrApproverForbidden)
	assert.Equal(t, changerequest.StatusPending, cr.Status())
	assert.Empty(t, cr.Approvals())
}

func TestDecideChangeRequestCommandHandler_Handle_AlreadyDecided(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cr := pendingChangeRequest(t, orderID)

	rejection, err := changerequest.NewApproval(
		kernel.NewUUID(), order.RoleAdmin, changerequest.DecisionReject, "", testTime)
	require.NoError(t, err)
	require.NoError(t, cr.RecordDecision(rejection))

	cmd, _ := commands.NewDecideChangeRequestCommand(
		cr.ID(), changerequest.DecisionApprove, kernel.NewUUID(), order.RoleAdmin, "")

	crRepo := new(MockChangeRequestRepository)
	crRepo.On("Get", ctx, cr.ID()).Return(cr, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, orderID).Return(restoredOrder(t, orderID, order.Pack), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ChangeRequestRepository").Return(crRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDecideChangeRequestCommandHandler(factory, new(RecordingJournal))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, changerequest.ErrChangeRequestNotPending)
}

func TestDecideChangeRequestCommandHandler_Handle_TipConflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cr := pendingChangeRequest(t, orderID)
	cmd, _ := commands.NewDecideChangeRequestCommand(
		cr.ID(), changerequest.DecisionApprove, kernel.NewUUID(), order.RoleAdmin, "")

	crRepo := new(MockChangeRequestRepository)
	crRepo.On("Get", ctx, cr.ID()).Return(cr, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, orderID).Return(restoredOrder(t, orderID, order.Pack), nil).Once()

	versionRepo := new(MockVersionRepository)
	versionRepo.On("Get", ctx, orderID, 0).Return(seedEntry(t, orderID, 0), nil).Once()
	versionRepo.On("GetTip", ctx, orderID).Return(seedEntry(t, orderID, 3), nil).Once()
	versionRepo.On("Append", ctx, mock.AnythingOfType("*version.Entry")).
		Return(version.ErrVersionConflict).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ChangeRequestRepository").Return(crRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("VersionRepository").Return(versionRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDecideChangeRequestCommandHandler(factory, new(RecordingJournal))
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, version.ErrVersionConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
