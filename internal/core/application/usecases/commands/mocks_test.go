package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockVersionRepository struct{ mock.Mock }

func (m *MockVersionRepository) Append(ctx context.Context, entry *version.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockVersionRepository) Get(ctx context.Context, orderID kernel.UUID, versionNumber int) (*version.Entry, error) {
	args := m.Called(ctx, orderID, versionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*version.Entry), args.Error(1)
}

func (m *MockVersionRepository) GetTip(ctx context.Context, orderID kernel.UUID) (*version.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*version.Entry), args.Error(1)
}

func (m *MockVersionRepository) List(ctx context.Context, orderID kernel.UUID) ([]*version.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*version.Entry), args.Error(1)
}

type MockChangeRequestRepository struct{ mock.Mock }

func (m *MockChangeRequestRepository) Add(ctx context.Context, cr *changerequest.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) Update(ctx context.Context, cr *changerequest.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changerequest.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*changerequest.ChangeRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*changerequest.ChangeRequest), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) VersionRepository() ports.VersionRepository {
	args := m.Called()
	return args.Get(0).(ports.VersionRepository)
}

func (m *MockUoW) ChangeRequestRepository() ports.ChangeRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ChangeRequestRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockGateResolver struct{ mock.Mock }

func (m *MockGateResolver) Resolve(ctx context.Context, orderID kernel.UUID) services.GateResults {
	args := m.Called(ctx, orderID)
	return args.Get(0).(services.GateResults)
}

// RecordingJournal captures published events for assertions.
type RecordingJournal struct {
	events []journal.Event
}

func (j *RecordingJournal) Publish(event journal.Event) {
	j.events = append(j.events, event)
}

type MockEscalationNotifier struct{ mock.Mock }

func (m *MockEscalationNotifier) NotifyStalled(
	ctx context.Context, aggregate *order.Order, stageKey string, escalateTo order.RoleSet,
) error {
	args := m.Called(ctx, aggregate, stageKey, escalateTo)
	return args.Error(0)
}
