package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"
)

// CreateProductionOrder handles POST /api/v1/production-orders.
func (s *Server) CreateProductionOrder(c echo.Context) error {
	var body NewProductionOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customerOrderID, err := parseUUID("customerOrderId", body.CustomerOrderID)
	if err != nil {
		return s.fail(c, err)
	}
	warehouseOrderID, err := parseOptionalUUID("warehouseOrderId", body.WarehouseOrderID)
	if err != nil {
		return s.fail(c, err)
	}
	priority, err := kernel.ParsePriority(body.Priority)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateProductionOrderCommand(
		customerOrderID,
		warehouseOrderID,
		priority,
		body.DueDate,
		kernel.WorkstationID(body.CreatedByWorkstationID),
		kernel.WorkstationID(body.AssignedWorkstationID),
		body.Notes,
	)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.CreateProductionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toProductionOrder(order))
}

// ListProductionOrders handles GET /api/v1/production-orders.
func (s *Server) ListProductionOrders(c echo.Context) error {
	customerOrderID, err := queryUUID(c, "customerOrderId")
	if err != nil {
		return s.fail(c, err)
	}
	warehouseOrderID, err := queryUUID(c, "warehouseOrderId")
	if err != nil {
		return s.fail(c, err)
	}
	status, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewProductionOrdersQuery(customerOrderID, warehouseOrderID, status)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.ListProductionOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toProductionOrder))
}

// GetProductionOrder handles GET /api/v1/production-orders/{id}.
func (s *Server) GetProductionOrder(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetProductionOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProductionOrder(order))
}

// GetProductionOrderByNumber handles GET /api/v1/production-orders/number/{number}.
func (s *Server) GetProductionOrderByNumber(c echo.Context) error {
	query, err := getByNumberQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetProductionOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProductionOrder(order))
}

// SubmitProductionOrder handles POST /api/v1/production-orders/{id}/submit.
func (s *Server) SubmitProductionOrder(c echo.Context) error {
	return handleByID(s, c, commands.NewSubmitProductionOrderCommand, s.h.SubmitProductionOrder, toProductionOrder)
}

// UpdateProductionProgress handles POST /api/v1/production-orders/{id}/progress.
func (s *Server) UpdateProductionProgress(c echo.Context) error {
	return handleByID(s, c, commands.NewUpdateProductionProgressCommand, s.h.UpdateProductionProgress, toProductionOrder)
}

// StartProduction handles POST /api/v1/production-orders/{id}/start.
func (s *Server) StartProduction(c echo.Context) error {
	return handleByID(s, c, commands.NewStartProductionCommand, s.h.StartProduction, toProductionOrder)
}

// CompleteProduction handles POST /api/v1/production-orders/{id}/complete.
func (s *Server) CompleteProduction(c echo.Context) error {
	return handleByID(s, c, commands.NewCompleteProductionCommand, s.h.CompleteProduction, toProductionOrder)
}

// SynthesizeControlOrders handles POST /api/v1/production-orders/{id}/control-orders.
func (s *Server) SynthesizeControlOrders(c echo.Context) error {
	return handleByID(s, c, commands.NewSynthesizeControlOrdersCommand, s.h.SynthesizeControlOrders, toSynthesisResults)
}

// GetScheduledTasks handles GET /api/v1/schedules/{scheduleId}/tasks.
func (s *Server) GetScheduledTasks(c echo.Context) error {
	scheduleID, err := pathString(c, "scheduleId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetScheduledTasksQuery(scheduleID)
	if err != nil {
		return s.fail(c, err)
	}
	tasks, err := s.h.GetScheduledTasks.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toScheduledTasks(tasks))
}

// handleByID runs a command whose only input is the {id} path parameter.
func handleByID[C, R, B any](
	s *Server,
	c echo.Context,
	newCommand func(kernel.UUID) (C, error),
	handler Handler[C, R],
	render func(R) B,
) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := newCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := handler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, render(result))
}
