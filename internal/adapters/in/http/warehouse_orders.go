package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"
)

// CreateWarehouseOrder handles POST /api/v1/warehouse-orders.
func (s *Server) CreateWarehouseOrder(c echo.Context) error {
	var body NewWarehouseOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customerOrderID, err := parseUUID("customerOrderId", body.CustomerOrderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateWarehouseOrderCommand(
		customerOrderID,
		kernel.WorkstationID(body.FulfillingWorkstationID),
		body.TriggerScenario,
		body.Notes,
	)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.CreateWarehouseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toWarehouseOrder(order))
}

// ListWarehouseOrders handles GET /api/v1/warehouse-orders.
func (s *Server) ListWarehouseOrders(c echo.Context) error {
	customerOrderID, err := queryUUID(c, "customerOrderId")
	if err != nil {
		return s.fail(c, err)
	}
	ws, err := queryWorkstation(c, "workstationId")
	if err != nil {
		return s.fail(c, err)
	}
	status, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewWarehouseOrdersQuery(customerOrderID, ws, status)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.ListWarehouseOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toWarehouseOrder))
}

// GetWarehouseOrder handles GET /api/v1/warehouse-orders/{id}.
func (s *Server) GetWarehouseOrder(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetWarehouseOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toWarehouseOrder(order))
}

// GetWarehouseOrderByNumber handles GET /api/v1/warehouse-orders/number/{number}.
func (s *Server) GetWarehouseOrderByNumber(c echo.Context) error {
	query, err := getByNumberQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetWarehouseOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toWarehouseOrder(order))
}

// UpdateWarehouseOrderStatus handles PATCH /api/v1/warehouse-orders/{id}/status.
func (s *Server) UpdateWarehouseOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusChange
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateWarehouseOrderStatusCommand(id, body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.UpdateWarehouseOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toWarehouseOrder(order))
}

// FulfillWarehouseOrder handles POST /api/v1/warehouse-orders/{id}/fulfill.
// A partial fulfillment is still a 200; the body tells which production
// order was raised for the shortfall.
func (s *Server) FulfillWarehouseOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewFulfillWarehouseOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.h.FulfillWarehouseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toFulfillment(result))
}
