package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	apihttp "manufacturing/internal/adapters/in/http"
	"manufacturing/internal/adapters/out/controlorders"
	"manufacturing/internal/adapters/out/inventory"
	"manufacturing/internal/adapters/out/kafka"
	"manufacturing/internal/adapters/out/postgres"
	"manufacturing/internal/adapters/out/postgres/migrations"
	"manufacturing/internal/adapters/out/scheduler"
	"manufacturing/internal/adapters/out/sequence"
	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/jobs"
	"manufacturing/internal/pkg/httpclient"
	"manufacturing/internal/pkg/logger"
	"manufacturing/internal/pkg/metrics"
)

type CompositionRoot struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	clock   ports.Clock

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sequence   ports.SequenceGenerator
	scheduler  ports.Scheduler
	inventory  ports.Inventory
	gateway    ports.ControlOrderGateway

	closers []func(context.Context) error
}

// NewCompositionRoot connects and migrates the database and builds every
// outbound adapter. Close releases what it opened.
func NewCompositionRoot(ctx context.Context, cfg Config, zl *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  zl,
		metrics: metrics.New(),
		clock:   ports.SystemClock,
	}
	if err := c.init(ctx); err != nil {
		return nil, errors.Join(err, c.Close(context.WithoutCancel(ctx)))
	}
	return c, nil
}

func (c *CompositionRoot) init(ctx context.Context) error {
	shutdownTracing, err := setupTracing(ctx, c.cfg.Tracing, c.logger)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, shutdownTracing)

	if err = c.openDatabase(); err != nil {
		return err
	}
	if err = c.openSequence(ctx); err != nil {
		return err
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(c.gormDB, c.openPublisher(), c.logger)

	c.scheduler = scheduler.NewClient(c.httpClient("scheduler", c.cfg.Scheduler))
	c.inventory = inventory.NewClient(c.httpClient("inventory", c.cfg.Inventory), c.logger)
	if c.cfg.ControlOrders.BaseURL != "" {
		c.gateway = controlorders.NewHTTPGateway(c.httpClient("control_orders", c.cfg.ControlOrders))
	} else {
		c.gateway = controlorders.NewLocalGateway(ptr(c.CreateCreateControlOrderCommandHandler()))
	}
	return nil
}

func (c *CompositionRoot) openDatabase() error {
	db, err := gorm.Open(gormpostgres.Open(c.cfg.DB.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(c.logger, logger.GormLevel(c.cfg.DB.LogLevel), c.cfg.DB.SlowThreshold),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(c.cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.cfg.DB.MaxIdleConns)
	c.closers = append(c.closers, func(context.Context) error { return sqlDB.Close() })
	c.gormDB = db

	return migrations.Up(c.cfg.DB.URL(), c.logger.With(zap.String("component", "migrations")))
}

// openSequence picks the Redis sequence when configured and seeds it with
// the highest numbers already stored.
func (c *CompositionRoot) openSequence(ctx context.Context) error {
	highest, err := postgres.HighestOrderNumbers(ctx, c.gormDB)
	if err != nil {
		return err
	}

	if c.cfg.Redis.Addr == "" {
		gen := sequence.NewAtomicGenerator()
		for series, value := range highest {
			gen.Seed(series, value)
		}
		c.sequence = gen
		c.logger.Warn("redis not configured, order numbers come from an in-process counter")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })
	if err = client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	gen := sequence.NewRedisGenerator(client, c.cfg.Redis.KeyPrefix)
	for series, value := range highest {
		if err = gen.Seed(ctx, series, value); err != nil {
			return err
		}
	}
	c.sequence = gen
	return nil
}

// openPublisher returns nil when no brokers are configured; the unit of work
// then drops events.
func (c *CompositionRoot) openPublisher() ports.EventPublisher {
	if len(c.cfg.Kafka.Brokers) == 0 {
		return nil
	}
	writer := kafka.NewWriter(c.cfg.Kafka.Brokers, c.cfg.Kafka.Topic)
	c.closers = append(c.closers, func(context.Context) error { return writer.Close() })
	return kafka.NewEventPublisher(writer, c.logger)
}

func (c *CompositionRoot) httpClient(target string, cfg ServiceConfig) *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Target:          target,
		BaseURL:         cfg.BaseURL,
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.MaxRetries,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
	}, &http.Client{}, c.metrics, c.logger)
}

// Close releases resources in reverse order of acquisition.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) productionUoW() commands.ProductionOrderUoWFactory {
	return FuncProductionOrderUoWFactory(func() commands.ProductionOrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) controlUoW() commands.ControlOrderUoWFactory {
	return FuncControlOrderUoWFactory(func() commands.ControlOrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) supplyUoW() commands.SupplyOrderUoWFactory {
	return FuncSupplyOrderUoWFactory(func() commands.SupplyOrderUoW { return c.uowFactory.Create() })
}

// reads returns a unit of work that is never begun; its repositories use the
// base connection.
func (c *CompositionRoot) reads() ports.UnitOfWork {
	return c.uowFactory.Create()
}

func (c *CompositionRoot) CreateCreateCustomerOrderCommandHandler() commands.CreateCustomerOrderCommandHandler {
	return commands.NewCreateCustomerOrderCommandHandler(c.uow(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateUpdateCustomerOrderStatusCommandHandler() commands.UpdateCustomerOrderStatusCommandHandler {
	return commands.NewUpdateCustomerOrderStatusCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateDeleteCustomerOrderCommandHandler() commands.DeleteCustomerOrderCommandHandler {
	return commands.NewDeleteCustomerOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCreateWarehouseOrderCommandHandler() commands.CreateWarehouseOrderCommandHandler {
	return commands.NewCreateWarehouseOrderCommandHandler(c.uow(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateUpdateWarehouseOrderStatusCommandHandler() commands.UpdateWarehouseOrderStatusCommandHandler {
	return commands.NewUpdateWarehouseOrderStatusCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateFulfillWarehouseOrderCommandHandler() commands.FulfillWarehouseOrderCommandHandler {
	return commands.NewFulfillWarehouseOrderCommandHandler(c.uow(), c.inventory, c.sequence, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCreateProductionOrderCommandHandler() commands.CreateProductionOrderCommandHandler {
	return commands.NewCreateProductionOrderCommandHandler(c.productionUoW(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateSubmitProductionOrderCommandHandler() commands.SubmitProductionOrderCommandHandler {
	return commands.NewSubmitProductionOrderCommandHandler(c.productionUoW(), c.scheduler, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateProductionProgressCommandHandler() commands.UpdateProductionProgressCommandHandler {
	return commands.NewUpdateProductionProgressCommandHandler(c.productionUoW(), c.scheduler, c.clock, c.logger)
}

func (c *CompositionRoot) CreateStartProductionCommandHandler() commands.StartProductionCommandHandler {
	return commands.NewStartProductionCommandHandler(c.productionUoW(), c.scheduler, c.clock)
}

func (c *CompositionRoot) CreateCompleteProductionCommandHandler() commands.CompleteProductionCommandHandler {
	return commands.NewCompleteProductionCommandHandler(c.productionUoW(), c.scheduler, c.clock)
}

func (c *CompositionRoot) CreateSynthesizeControlOrdersCommandHandler() commands.SynthesizeControlOrdersCommandHandler {
	return commands.NewSynthesizeControlOrdersCommandHandler(
		c.productionUoW(), c.scheduler, c.gateway, c.clock, c.metrics, c.logger,
	)
}

func (c *CompositionRoot) CreateCreateControlOrderCommandHandler() commands.CreateControlOrderCommandHandler {
	return commands.NewCreateControlOrderCommandHandler(c.controlUoW(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateChangeControlOrderStatusCommandHandler() commands.ChangeControlOrderStatusCommandHandler {
	return commands.NewChangeControlOrderStatusCommandHandler(c.controlUoW(), c.clock)
}

func (c *CompositionRoot) CreateUpdateControlOrderRecordCommandHandler() commands.UpdateControlOrderRecordCommandHandler {
	return commands.NewUpdateControlOrderRecordCommandHandler(c.controlUoW(), c.clock)
}

func (c *CompositionRoot) CreateRequestSuppliesCommandHandler() commands.RequestSuppliesCommandHandler {
	return commands.NewRequestSuppliesCommandHandler(c.controlUoW(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateCreateSupplyOrderCommandHandler() commands.CreateSupplyOrderCommandHandler {
	return commands.NewCreateSupplyOrderCommandHandler(c.supplyUoW(), c.sequence, c.clock)
}

func (c *CompositionRoot) CreateUpdateSupplyOrderStatusCommandHandler() commands.UpdateSupplyOrderStatusCommandHandler {
	return commands.NewUpdateSupplyOrderStatusCommandHandler(c.supplyUoW(), c.clock)
}

func (c *CompositionRoot) CreateFulfillSupplyItemCommandHandler() commands.FulfillSupplyItemCommandHandler {
	return commands.NewFulfillSupplyItemCommandHandler(c.supplyUoW(), c.clock)
}

func (c *CompositionRoot) CreateGetScheduledTasksQueryHandler() queries.GetScheduledTasksQueryHandler {
	return queries.NewGetScheduledTasksQueryHandler(c.scheduler, c.logger)
}

// HTTPHandlers binds every use case to the API.
func (c *CompositionRoot) HTTPHandlers() apihttp.Handlers {
	reads := c.reads()
	return apihttp.Handlers{
		CreateCustomerOrder:       ptr(c.CreateCreateCustomerOrderCommandHandler()),
		UpdateCustomerOrderStatus: ptr(c.CreateUpdateCustomerOrderStatusCommandHandler()),
		DeleteCustomerOrder:       ptr(c.CreateDeleteCustomerOrderCommandHandler()).Handle,
		GetCustomerOrder:          queries.NewGetOrderQueryHandler[*customerorder.CustomerOrder](reads.CustomerOrderRepository()),
		ListCustomerOrders: queries.NewListOrdersQueryHandler[*customerorder.CustomerOrder, ports.CustomerOrderFilter](
			reads.CustomerOrderRepository()),

		CreateWarehouseOrder:       ptr(c.CreateCreateWarehouseOrderCommandHandler()),
		UpdateWarehouseOrderStatus: ptr(c.CreateUpdateWarehouseOrderStatusCommandHandler()),
		FulfillWarehouseOrder:      ptr(c.CreateFulfillWarehouseOrderCommandHandler()),
		GetWarehouseOrder:          queries.NewGetOrderQueryHandler[*warehouseorder.WarehouseOrder](reads.WarehouseOrderRepository()),
		ListWarehouseOrders: queries.NewListOrdersQueryHandler[*warehouseorder.WarehouseOrder, ports.WarehouseOrderFilter](
			reads.WarehouseOrderRepository()),

		CreateProductionOrder:    ptr(c.CreateCreateProductionOrderCommandHandler()),
		SubmitProductionOrder:    ptr(c.CreateSubmitProductionOrderCommandHandler()),
		UpdateProductionProgress: ptr(c.CreateUpdateProductionProgressCommandHandler()),
		StartProduction:          ptr(c.CreateStartProductionCommandHandler()),
		CompleteProduction:       ptr(c.CreateCompleteProductionCommandHandler()),
		SynthesizeControlOrders:  ptr(c.CreateSynthesizeControlOrdersCommandHandler()),
		GetProductionOrder:       queries.NewGetOrderQueryHandler[*productionorder.ProductionOrder](reads.ProductionOrderRepository()),
		ListProductionOrders: queries.NewListOrdersQueryHandler[*productionorder.ProductionOrder, ports.ProductionOrderFilter](
			reads.ProductionOrderRepository()),
		GetScheduledTasks: c.CreateGetScheduledTasksQueryHandler(),

		CreateControlOrder:       ptr(c.CreateCreateControlOrderCommandHandler()),
		ChangeControlOrderStatus: ptr(c.CreateChangeControlOrderStatusCommandHandler()),
		UpdateControlOrderRecord: ptr(c.CreateUpdateControlOrderRecordCommandHandler()),
		RequestSupplies:          ptr(c.CreateRequestSuppliesCommandHandler()),
		GetControlOrder:          queries.NewGetOrderQueryHandler[*controlorder.ControlOrder](reads.ControlOrderRepository()),
		ListControlOrders: queries.NewListOrdersQueryHandler[*controlorder.ControlOrder, ports.ControlOrderFilter](
			reads.ControlOrderRepository()),

		CreateSupplyOrder:       ptr(c.CreateCreateSupplyOrderCommandHandler()),
		UpdateSupplyOrderStatus: ptr(c.CreateUpdateSupplyOrderStatusCommandHandler()),
		FulfillSupplyItem:       ptr(c.CreateFulfillSupplyItemCommandHandler()),
		GetSupplyOrder:          queries.NewGetOrderQueryHandler[*supplyorder.SupplyOrder](reads.SupplyOrderRepository()),
		ListSupplyOrders: queries.NewListOrdersQueryHandler[*supplyorder.SupplyOrder, ports.SupplyOrderFilter](
			reads.SupplyOrderRepository()),
	}
}

// JobManager builds the background jobs. It is empty when jobs are disabled.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	if !c.cfg.Jobs.Enabled {
		return jobs.NewJobManager()
	}
	orders := c.reads().ProductionOrderRepository()
	return jobs.NewJobManager(
		jobs.NewProductionProgressJob(c.cfg.Jobs.ProgressSchedule, c.cfg.Jobs.Timeout,
			orders, ptr(c.CreateUpdateProductionProgressCommandHandler()), c.metrics, c.logger),
		jobs.NewControlOrderSynthesisJob(c.cfg.Jobs.SynthesisSchedule, c.cfg.Jobs.Timeout,
			orders, ptr(c.CreateSynthesizeControlOrdersCommandHandler()), c.metrics, c.logger),
	)
}

func ptr[T any](v T) *T {
	return &v
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncProductionOrderUoWFactory func() commands.ProductionOrderUoW

func (f FuncProductionOrderUoWFactory) Create() commands.ProductionOrderUoW {
	return f()
}

type FuncControlOrderUoWFactory func() commands.ControlOrderUoW

func (f FuncControlOrderUoWFactory) Create() commands.ControlOrderUoW {
	return f()
}

type FuncSupplyOrderUoWFactory func() commands.SupplyOrderUoW

func (f FuncSupplyOrderUoWFactory) Create() commands.SupplyOrderUoW {
	return f()
}
