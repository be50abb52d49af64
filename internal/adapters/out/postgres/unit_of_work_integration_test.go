package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work and the outbox against
// a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, information, payment_histories, outbox_messages",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWritesOrderAndOutbox() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(testOrder.DomainEvents(), "Events should be cleared after commit")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.SerialNumber(), stored.SerialNumber())

	var messages []outboxrepo.OutboxMessageDTO
	suite.Require().NoError(suite.db.Find(&messages).Error)
	suite.Require().Len(messages, 1)
	suite.Equal(order.EventOrderCreated, messages[0].EventName)
	suite.Equal(testOrder.ID().Bytes(), messages[0].AggregateID)
	suite.Nil(messages[0].SentAt)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsOrderAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.NotEmpty(testOrder.DomainEvents(), "Events must survive a rollback")

	_, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SameAggregateSavedTwice_EventsWrittenOnce() {
	ctx := context.Background()
	testOrder := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(testOrder.ChangePayment("transfer", testOrder.CreatedAt().Add(time.Second)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	var names []string
	suite.Require().NoError(
		suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Order("occurred_at").Pluck("event_name", &names).Error,
	)
	suite.Equal([]string{order.EventOrderCreated, order.EventOrderUpdated}, names)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_FetchPendingAndMarkSent() {
	ctx := context.Background()
	first := createTestOrder(suite)
	second := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, first))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, second))
	suite.Require().NoError(uow.Commit(ctx))

	relay := suite.factory.Create()
	suite.Require().NoError(relay.Begin(ctx))
	pending, err := relay.OutboxRepository().FetchPending(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(order.EventOrderCreated, pending[0].EventName)
	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(pending[0].Payload, &payload))
	suite.Equal("15.00", payload["total_price"])
	sent := pending[0].AggregateID

	suite.Require().NoError(relay.OutboxRepository().MarkSent(ctx, []kernel.UUID{pending[0].ID}, time.Now()))
	suite.Require().NoError(relay.Commit(ctx))

	rest, err := suite.factory.Create().OutboxRepository().FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.False(rest[0].AggregateID.IsEqual(sent))
	suite.True(rest[0].AggregateID.IsEqual(first.ID()) || rest[0].AggregateID.IsEqual(second.ID()))
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Mug", kernel.MustMoney("7.50"), "white", "MUG-1", 2)
	suite.Require().NoError(err)
	receiver, err := order.NewInformation(order.ReceiverInformation, "Ada", "Main St 1", "123", "")
	suite.Require().NoError(err)
	buyer, err := order.NewInformation(order.BuyerInformation, "Ada", "Main St 1", "123", "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), "SN-"+kernel.NewUUID().String()[:8], "card", []*order.Item{item},
		receiver, buyer, nil, time.Now())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
