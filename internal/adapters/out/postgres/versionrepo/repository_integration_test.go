package versionrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/versionrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// VersionRepositoryIntegrationTestSuite exercises the ledger against a real
// PostgreSQL instance, the composite primary key included: conflict detection
// rides on the database rejecting a duplicate (order_id, version) pair.
type VersionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *versionrepo.GormVersionRepository
}

func (suite *VersionRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError is what turns the driver's unique-violation error into
	// gorm.ErrDuplicatedKey, which the repository maps to ErrVersionConflict.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&versionrepo.VersionDTO{}))
}

func (suite *VersionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_versions").Error)
	suite.repository = versionrepo.NewGormVersionRepository(suite.db)
}

func (suite *VersionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *VersionRepositoryIntegrationTestSuite) TestAppend_Get_RoundTrip() {
	ctx := context.Background()
	entry := suite.seedEntry(kernel.NewUUID(), 0)

	suite.Require().NoError(suite.repository.Append(ctx, entry))

	loaded, err := suite.repository.Get(ctx, entry.OrderID(), 0)
	suite.Require().NoError(err)
	suite.Equal(entry.Version(), loaded.Version())
	suite.Equal(entry.Comment(), loaded.Comment())
	suite.Equal(entry.Snapshot(), loaded.Snapshot())
	suite.True(entry.ActorID().IsEqual(loaded.ActorID()))
	suite.Nil(loaded.ChangeRequestID())
}

func (suite *VersionRepositoryIntegrationTestSuite) TestAppend_DuplicateVersion_Conflict() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(orderID, 0)))

	err := suite.repository.Append(ctx, suite.seedEntry(orderID, 0))
	suite.Require().ErrorIs(err, version.ErrVersionConflict)
}

func (suite *VersionRepositoryIntegrationTestSuite) TestAppend_SameVersionDifferentOrders_NoConflict() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(kernel.NewUUID(), 0)))
	suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(kernel.NewUUID(), 0)))
}

func (suite *VersionRepositoryIntegrationTestSuite) TestGet_AbsentVersion_NotFound() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(orderID, 0)))

	_, err := suite.repository.Get(ctx, orderID, 7)
	suite.Require().ErrorIs(err, version.ErrVersionNotFound)
}

func (suite *VersionRepositoryIntegrationTestSuite) TestGetTip_ReturnsHighestVersion() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	for v := 0; v <= 3; v++ {
		suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(orderID, v)))
	}

	tip, err := suite.repository.GetTip(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(3, tip.Version())
}

func (suite *VersionRepositoryIntegrationTestSuite) TestGetTip_EmptyLedger_NotFound() {
	_, err := suite.repository.GetTip(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, version.ErrVersionNotFound)
}

func (suite *VersionRepositoryIntegrationTestSuite) TestList_AscendingByVersion() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	// Appended out of order on purpose.
	for _, v := range []int{2, 0, 1} {
		suite.Require().NoError(suite.repository.Append(ctx, suite.seedEntry(orderID, v)))
	}

	entries, err := suite.repository.List(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	for i, entry := range entries {
		suite.Equal(i, entry.Version())
	}
}

func (suite *VersionRepositoryIntegrationTestSuite) TestAppend_CarriesChangeRequestID() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	crID := kernel.NewUUID()

	entry, err := version.NewEntry(orderID, 1, time.Now().UTC(), kernel.NewUUID(),
		suite.someSnapshot(), &crID, "address fix")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Append(ctx, &entry))

	loaded, err := suite.repository.Get(ctx, orderID, 1)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.ChangeRequestID())
	suite.True(crID.IsEqual(*loaded.ChangeRequestID()))
}

func (suite *VersionRepositoryIntegrationTestSuite) seedEntry(orderID kernel.UUID, versionN int) *version.Entry {
	entry, err := version.NewEntry(orderID, versionN, time.Now().UTC(), kernel.NewUUID(),
		suite.someSnapshot(), nil, "initial")
	suite.Require().NoError(err)
	return &entry
}

func (suite *VersionRepositoryIntegrationTestSuite) someSnapshot() order.Snapshot {
	return order.Snapshot{
		Delivery: order.DeliveryInfo{Street: "Lenina 5", City: "Kazan"},
		Pricing:  order.Pricing{AmountMinor: 1500000, Currency: "RUB"},
		Items:    []order.LineItem{{SKU: "SKU-1", Qty: 2}},
	}
}

func TestVersionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(VersionRepositoryIntegrationTestSuite))
}
