package queries

import (
	"errors"
	"strings"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the New...OrdersQuery constructors",
)

// ListOrdersQuery carries a repository filter. The constructors below parse
// the raw filter values an HTTP caller sends; empty strings and nil pointers
// mean "any".
type ListOrdersQuery[F any] struct { //nolint:recvcheck //using for validation
	filter F

	guard guard.ConstructorGuard
}

func (q ListOrdersQuery[F]) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery[F]) Filter() F {
	return q.filter
}

func newListOrdersQuery[F any](filter F) ListOrdersQuery[F] {
	return ListOrdersQuery[F]{filter: filter, guard: guard.NewConstructorGuard()}
}

func NewCustomerOrdersQuery(
	workstationID *kernel.WorkstationID,
	status string,
) (ListOrdersQuery[ports.CustomerOrderFilter], error) {
	var filter ports.CustomerOrderFilter
	var statusErr error
	filter.WorkstationID = workstationID
	filter.Status, statusErr = optional(status, customerorder.ParseStatus)
	if err := errors.Join(validateWorkstation(workstationID), statusErr); err != nil {
		return ListOrdersQuery[ports.CustomerOrderFilter]{}, err
	}
	return newListOrdersQuery(filter), nil
}

func NewWarehouseOrdersQuery(
	customerOrderID *kernel.UUID,
	fulfillingWorkstationID *kernel.WorkstationID,
	status string,
) (ListOrdersQuery[ports.WarehouseOrderFilter], error) {
	var filter ports.WarehouseOrderFilter
	var statusErr error
	filter.CustomerOrderID = customerOrderID
	filter.FulfillingWorkstationID = fulfillingWorkstationID
	filter.Status, statusErr = optional(status, warehouseorder.ParseStatus)
	if err := errors.Join(validateWorkstation(fulfillingWorkstationID), statusErr); err != nil {
		return ListOrdersQuery[ports.WarehouseOrderFilter]{}, err
	}
	return newListOrdersQuery(filter), nil
}

func NewProductionOrdersQuery(
	customerOrderID *kernel.UUID,
	warehouseOrderID *kernel.UUID,
	status string,
) (ListOrdersQuery[ports.ProductionOrderFilter], error) {
	statusFilter, err := optional(status, productionorder.ParseStatus)
	if err != nil {
		return ListOrdersQuery[ports.ProductionOrderFilter]{}, err
	}
	return newListOrdersQuery(ports.ProductionOrderFilter{
		CustomerOrderID:  customerOrderID,
		WarehouseOrderID: warehouseOrderID,
		Status:           statusFilter,
	}), nil
}

func NewControlOrdersQuery(
	orderType string,
	workstationID *kernel.WorkstationID,
	status string,
	productionOrderID *kernel.UUID,
) (ListOrdersQuery[ports.ControlOrderFilter], error) {
	var filter ports.ControlOrderFilter
	var typeErr, statusErr error
	filter.Type, typeErr = optional(orderType, controlorder.ParseType)
	filter.Status, statusErr = optional(status, controlorder.ParseStatus)
	filter.WorkstationID = workstationID
	filter.ProductionOrderID = productionOrderID
	if err := errors.Join(typeErr, validateWorkstation(workstationID), statusErr); err != nil {
		return ListOrdersQuery[ports.ControlOrderFilter]{}, err
	}
	return newListOrdersQuery(filter), nil
}

// NewActiveControlOrdersQuery lists the IN_PROGRESS control orders of a workstation.
func NewActiveControlOrdersQuery(workstationID kernel.WorkstationID) (ListOrdersQuery[ports.ControlOrderFilter], error) {
	return NewControlOrdersQuery("", &workstationID, controlorder.InProgress.String(), nil)
}

// NewUnassignedControlOrdersQuery lists the control orders of a workstation
// that nobody has started yet.
func NewUnassignedControlOrdersQuery(workstationID kernel.WorkstationID) (ListOrdersQuery[ports.ControlOrderFilter], error) {
	return NewControlOrdersQuery("", &workstationID, controlorder.Assigned.String(), nil)
}

func NewSupplyOrdersQuery(
	requestingWorkstationID *kernel.WorkstationID,
	supplyWorkstationID *kernel.WorkstationID,
	status string,
	sourceControlOrderID *kernel.UUID,
	sourceType string,
) (ListOrdersQuery[ports.SupplyOrderFilter], error) {
	var filter ports.SupplyOrderFilter
	var statusErr, typeErr error
	filter.RequestingWorkstationID = requestingWorkstationID
	filter.SupplyWorkstationID = supplyWorkstationID
	filter.SourceControlOrderID = sourceControlOrderID
	filter.Status, statusErr = optional(status, supplyorder.ParseStatus)
	filter.SourceType, typeErr = optional(sourceType, controlorder.ParseType)
	if err := errors.Join(
		validateWorkstation(requestingWorkstationID),
		validateWorkstation(supplyWorkstationID),
		statusErr,
		typeErr,
	); err != nil {
		return ListOrdersQuery[ports.SupplyOrderFilter]{}, err
	}
	return newListOrdersQuery(filter), nil
}

func optional[T any](raw string, parse func(string) (T, error)) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func validateWorkstation(id *kernel.WorkstationID) error {
	if id == nil {
		return nil
	}
	return id.Validate("workstationId")
}
