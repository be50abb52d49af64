package cmd

import (
	"context"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka/eventpublisher"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/redis/cartstore"
	"ordering/internal/adapters/out/redis/sequence"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	redis      redis.Cmdable
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *eventpublisher.KafkaEventPublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient redis.Cmdable, logger *zap.Logger) CompositionRoot {
	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		redis:      redisClient,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	if brokers := eventpublisher.ParseBrokers(config.KafkaBrokers); len(brokers) > 0 {
		root.publisher = eventpublisher.NewKafkaEventPublisher(brokers, config.KafkaOrderEventsTopic)
	}
	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CartProvider() ports.CartProvider {
	return cartstore.NewRedisCartStore(c.redis)
}

// SerialNumberResolver picks the strategy named by SERIAL_NUMBER_STRATEGY.
func (c *CompositionRoot) SerialNumberResolver() ports.SerialNumberResolver {
	if c.config.SerialNumberStrategy == SerialNumberRedis {
		return sequence.NewSerialNumberResolver(c.redis, c.config.SerialNumberPrefix)
	}
	return services.NewTimestampSerialNumberResolver()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CartProvider(), c.SerialNumberResolver(), c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderItemCommandHandler() commands.CancelOrderItemCommandHandler {
	return commands.NewCancelOrderItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddPaymentHistoryCommandHandler() commands.AddPaymentHistoryCommandHandler {
	return commands.NewAddPaymentHistoryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeShippingStatusCommandHandler() commands.ChangeShippingStatusCommandHandler {
	return commands.NewChangeShippingStatusCommandHandler(c.orderUoWFactory())
}

// CreatePublishOutboxCommandHandler returns false when no broker is configured.
func (c *CompositionRoot) CreatePublishOutboxCommandHandler() (commands.PublishOutboxCommandHandler, bool) {
	if c.publisher == nil {
		return commands.PublishOutboxCommandHandler{}, false
	}
	return commands.NewPublishOutboxCommandHandler(c.outboxUoWFactory(), c.publisher), true
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// NewJobManager schedules the outbox relay when Kafka is configured.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	scheduled := make([]jobs.Job, 0, 1)

	if handler, ok := c.CreatePublishOutboxCommandHandler(); ok {
		scheduled = append(scheduled, jobs.NewOutboxRelayJob(
			&handler, c.config.OutboxRelaySchedule, c.config.OutboxBatchSize, c.logger,
		))
	} else {
		c.logger.Warn("KAFKA_BROKERS is empty, domain events stay in the outbox")
	}

	return jobs.NewJobManager(c.logger, scheduled...)
}

func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*echo.Echo, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpadapter.NewMetrics(registry)

	createOrder := c.CreateCreateOrderCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	cancelOrderItem := c.CreateCancelOrderItemCommandHandler()
	addPaymentHistory := c.CreateAddPaymentHistoryCommandHandler()
	changeOrderStatus := c.CreateChangeOrderStatusCommandHandler()
	changeShippingStatus := c.CreateChangeShippingStatusCommandHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          &createOrder,
		UpdateOrder:          &updateOrder,
		DeleteOrder:          &deleteOrder,
		CancelOrderItem:      &cancelOrderItem,
		AddPaymentHistory:    &addPaymentHistory,
		ChangeOrderStatus:    &changeOrderStatus,
		ChangeShippingStatus: &changeShippingStatus,
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
	}, metrics)

	return httpadapter.NewRouter(ctx, server, metrics, httpadapter.RouterConfig{
		JWTSecret:        c.config.JWTSecret,
		RateLimit:        c.config.RateLimit,
		RateBurst:        c.config.RateBurst,
		ValidateRequests: c.config.ValidateRequests,
		LogLevel:         c.config.LogLevel,
	}, c.logger)
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
