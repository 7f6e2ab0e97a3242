// Package http exposes the order use cases as a JSON API under /api/v1.
package http

import (
	"context"

	"go.uber.org/zap"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
)

// Handler is any command or query handler of the application layer.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type (
	customerOrderGetter   = Handler[queries.GetOrderQuery, *customerorder.CustomerOrder]
	warehouseOrderGetter  = Handler[queries.GetOrderQuery, *warehouseorder.WarehouseOrder]
	productionOrderGetter = Handler[queries.GetOrderQuery, *productionorder.ProductionOrder]
	controlOrderGetter    = Handler[queries.GetOrderQuery, *controlorder.ControlOrder]
	supplyOrderGetter     = Handler[queries.GetOrderQuery, *supplyorder.SupplyOrder]
)

// Handlers lists every use case the API exposes.
type Handlers struct {
	CreateCustomerOrder       Handler[commands.CreateCustomerOrderCommand, *customerorder.CustomerOrder]
	UpdateCustomerOrderStatus Handler[commands.UpdateCustomerOrderStatusCommand, *customerorder.CustomerOrder]
	DeleteCustomerOrder       func(ctx context.Context, cmd commands.DeleteCustomerOrderCommand) error
	GetCustomerOrder          customerOrderGetter
	ListCustomerOrders        Handler[queries.ListOrdersQuery[ports.CustomerOrderFilter], []*customerorder.CustomerOrder]

	CreateWarehouseOrder       Handler[commands.CreateWarehouseOrderCommand, *warehouseorder.WarehouseOrder]
	UpdateWarehouseOrderStatus Handler[commands.UpdateWarehouseOrderStatusCommand, *warehouseorder.WarehouseOrder]
	FulfillWarehouseOrder      Handler[commands.FulfillWarehouseOrderCommand, commands.FulfillmentResult]
	GetWarehouseOrder          warehouseOrderGetter
	ListWarehouseOrders        Handler[queries.ListOrdersQuery[ports.WarehouseOrderFilter], []*warehouseorder.WarehouseOrder]

	CreateProductionOrder    Handler[commands.CreateProductionOrderCommand, *productionorder.ProductionOrder]
	SubmitProductionOrder    Handler[commands.SubmitProductionOrderCommand, *productionorder.ProductionOrder]
	UpdateProductionProgress Handler[commands.UpdateProductionProgressCommand, *productionorder.ProductionOrder]
	StartProduction          Handler[commands.StartProductionCommand, *productionorder.ProductionOrder]
	CompleteProduction       Handler[commands.CompleteProductionCommand, *productionorder.ProductionOrder]
	SynthesizeControlOrders  Handler[commands.SynthesizeControlOrdersCommand, []commands.SynthesisResult]
	GetProductionOrder       productionOrderGetter
	ListProductionOrders     Handler[queries.ListOrdersQuery[ports.ProductionOrderFilter], []*productionorder.ProductionOrder]
	GetScheduledTasks        Handler[queries.GetScheduledTasksQuery, []schedule.Task]

	CreateControlOrder       Handler[commands.CreateControlOrderCommand, *controlorder.ControlOrder]
	ChangeControlOrderStatus Handler[commands.ChangeControlOrderStatusCommand, *controlorder.ControlOrder]
	UpdateControlOrderRecord Handler[commands.UpdateControlOrderRecordCommand, *controlorder.ControlOrder]
	RequestSupplies          Handler[commands.RequestSuppliesCommand, *supplyorder.SupplyOrder]
	GetControlOrder          controlOrderGetter
	ListControlOrders        Handler[queries.ListOrdersQuery[ports.ControlOrderFilter], []*controlorder.ControlOrder]

	CreateSupplyOrder       Handler[commands.CreateSupplyOrderCommand, *supplyorder.SupplyOrder]
	UpdateSupplyOrderStatus Handler[commands.UpdateSupplyOrderStatusCommand, *supplyorder.SupplyOrder]
	FulfillSupplyItem       Handler[commands.FulfillSupplyItemCommand, *supplyorder.SupplyOrder]
	GetSupplyOrder          supplyOrderGetter
	ListSupplyOrders        Handler[queries.ListOrdersQuery[ports.SupplyOrderFilter], []*supplyorder.SupplyOrder]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With(zap.String("component", "http")),
	}
}
