package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/metrics"
	"manufacturing/internal/pkg/saga"
)

// FulfillmentResult is the outcome of a fulfillment attempt. ProductionOrder
// is set when stock was short and a production order was cascaded.
type FulfillmentResult struct {
	WarehouseOrder  *warehouseorder.WarehouseOrder
	ProductionOrder *productionorder.ProductionOrder
}

// Fulfilled reports whether every line was served from stock.
func (r FulfillmentResult) Fulfilled() bool {
	return r.WarehouseOrder != nil && r.WarehouseOrder.Status() == warehouseorder.Fulfilled
}

// FulfillWarehouseOrderCommandHandler debits the fulfilling workstation for
// every open line of a warehouse order.
//
// When every debit succeeds the warehouse order becomes FULFILLED and its
// customer order COMPLETED. Otherwise the order stays in PROCESSING and one
// production order is cascaded for the shortfall. Debits are external, so each
// one registers a stock restore that runs if the local transaction fails.
type FulfillWarehouseOrderCommandHandler struct {
	uowFactory UoWFactory
	inventory  ports.Inventory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewFulfillWarehouseOrderCommandHandler(
	uowFactory UoWFactory,
	inventory ports.Inventory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) FulfillWarehouseOrderCommandHandler {
	return FulfillWarehouseOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		sequence:   sequence,
		clock:      clock,
		metrics:    m,
		logger:     logger.With(zap.String("component", "warehouse-fulfillment")),
	}
}

func (h *FulfillWarehouseOrderCommandHandler) Handle(
	ctx context.Context,
	cmd FulfillWarehouseOrderCommand,
) (FulfillmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return FulfillmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FulfillmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	warehouseRepo := uow.WarehouseOrderRepository()
	order, err := warehouseRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return FulfillmentResult{}, err
	}
	if order.Status().IsTerminal() {
		return FulfillmentResult{}, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s order cannot be fulfilled", order.Status()),
		)
	}

	log := h.logger.With(zap.String("warehouseOrder", order.Number()))
	tx := saga.New("fulfill-warehouse-order")

	result, err := h.fulfill(ctx, uow, order, tx, log)
	if err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		if compErr := tx.Compensate(context.WithoutCancel(ctx)); compErr != nil {
			log.Error("stock compensation failed", zap.Error(compErr))
			err = errors.Join(err, compErr)
		}
		return FulfillmentResult{}, err
	}
	tx.Forget()

	if result.Fulfilled() {
		h.metrics.IncFulfillment("fulfilled")
	} else {
		h.metrics.IncFulfillment("partial")
	}
	return result, nil
}

func (h *FulfillWarehouseOrderCommandHandler) fulfill(
	ctx context.Context,
	uow UoW,
	order *warehouseorder.WarehouseOrder,
	tx *saga.Saga,
	log *zap.Logger,
) (FulfillmentResult, error) {
	now := h.clock.Now()
	failures := 0
	for _, item := range order.Items() {
		if item.IsFullyFulfilled() {
			continue
		}
		if !h.debit(ctx, order, item, tx, log) {
			failures++
			continue
		}
		if err := order.FulfillItem(item.ID(), now); err != nil {
			return FulfillmentResult{}, err
		}
	}

	result := FulfillmentResult{WarehouseOrder: order}
	if failures == 0 {
		if err := order.ChangeStatus(warehouseorder.Fulfilled, now); err != nil {
			return FulfillmentResult{}, err
		}
		if err := h.closeCustomerOrder(ctx, uow.CustomerOrderRepository(), order, now, log); err != nil {
			return FulfillmentResult{}, err
		}
	} else {
		log.Info("warehouse order partially fulfilled", zap.Int("failedItems", failures))
		if err := order.MarkPartiallyFulfilled(now); err != nil {
			return FulfillmentResult{}, err
		}

		number, err := nextNumber(ctx, h.sequence, ports.ProductionOrderSeries, productionOrderNumberFormat)
		if err != nil {
			return FulfillmentResult{}, err
		}
		production, err := productionorder.CascadeFromWarehouseOrder(kernel.NewUUID(), number, order, now)
		if err != nil {
			return FulfillmentResult{}, err
		}
		if err = uow.ProductionOrderRepository().Add(ctx, production); err != nil {
			return FulfillmentResult{}, err
		}
		result.ProductionOrder = production
	}

	if err := uow.WarehouseOrderRepository().Update(ctx, order); err != nil {
		return FulfillmentResult{}, err
	}
	return result, nil
}

// debit takes the requested quantity of item from stock. Failures are logged
// and reported as false; they only affect the outcome of the order.
func (h *FulfillWarehouseOrderCommandHandler) debit(
	ctx context.Context,
	order *warehouseorder.WarehouseOrder,
	item *warehouseorder.Item,
	tx *saga.Saga,
	log *zap.Logger,
) bool {
	ws := order.FulfillingWorkstationID()
	ok, err := h.inventory.UpdateStock(ctx, ws, item.ItemType(), item.ItemID(), item.RequestedQuantity())
	if err != nil {
		log.Warn("stock debit failed", zap.Int64("itemId", item.ItemID()), zap.Error(err))
		return false
	}
	if !ok {
		log.Info("insufficient stock", zap.Int64("itemId", item.ItemID()), zap.Int("requested", item.RequestedQuantity()))
		return false
	}

	tx.AddCompensation(fmt.Sprintf("restore item %d", item.ItemID()), func(ctx context.Context) error {
		return h.inventory.RestoreStock(ctx, ws, item.ItemType(), item.ItemID(), item.RequestedQuantity())
	})
	return true
}

// closeCustomerOrder completes the source customer order. A missing order or
// a refused transition is logged and does not fail the fulfillment.
func (h *FulfillWarehouseOrderCommandHandler) closeCustomerOrder(
	ctx context.Context,
	repo ports.CustomerOrderRepository,
	order *warehouseorder.WarehouseOrder,
	now time.Time,
	log *zap.Logger,
) error {
	customer, err := repo.Get(ctx, order.CustomerOrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		log.Warn("customer order not found, not closed", zap.Stringer("customerOrderId", order.CustomerOrderID()))
		return nil
	}
	if err != nil {
		return err
	}

	if err = customer.Complete(order.FulfilledNote(), now); err != nil {
		log.Warn("customer order not closed",
			zap.String("customerOrder", customer.Number()),
			zap.Stringer("status", customer.Status()),
			zap.Error(err))
		return nil
	}

	return repo.Update(ctx, customer)
}
