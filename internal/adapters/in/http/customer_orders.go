package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"
)

// CreateCustomerOrder handles POST /api/v1/customer-orders.
func (s *Server) CreateCustomerOrder(c echo.Context) error {
	var body NewCustomerOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lines := make([]commands.CustomerOrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, commands.CustomerOrderLine{
			ItemType: item.ItemType,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}

	cmd, err := commands.NewCreateCustomerOrderCommand(kernel.WorkstationID(body.WorkstationID), lines, body.Notes)
	if err != nil {
		return s.fail(c, err)
	}

	order, err := s.h.CreateCustomerOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toCustomerOrder(order))
}

// ListCustomerOrders handles GET /api/v1/customer-orders.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	ws, err := queryWorkstation(c, "workstationId")
	if err != nil {
		return s.fail(c, err)
	}
	status, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewCustomerOrdersQuery(ws, status)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toCustomerOrder))
}

// GetCustomerOrder handles GET /api/v1/customer-orders/{id}.
func (s *Server) GetCustomerOrder(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetCustomerOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomerOrder(order))
}

// GetCustomerOrderByNumber handles GET /api/v1/customer-orders/number/{number}.
func (s *Server) GetCustomerOrderByNumber(c echo.Context) error {
	query, err := getByNumberQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetCustomerOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomerOrder(order))
}

// UpdateCustomerOrderStatus handles PATCH /api/v1/customer-orders/{id}/status.
func (s *Server) UpdateCustomerOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusChange
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCustomerOrderStatusCommand(id, body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.UpdateCustomerOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomerOrder(order))
}

// DeleteCustomerOrder handles DELETE /api/v1/customer-orders/{id}.
func (s *Server) DeleteCustomerOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteCustomerOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteCustomerOrder(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func getByIDQuery(c echo.Context) (queries.GetOrderQuery, error) {
	id, err := pathUUID(c, "id")
	if err != nil {
		return queries.GetOrderQuery{}, err
	}
	return queries.NewGetOrderByIDQuery(id)
}

func getByNumberQuery(c echo.Context) (queries.GetOrderQuery, error) {
	number, err := pathString(c, "number")
	if err != nil {
		return queries.GetOrderQuery{}, err
	}
	return queries.NewGetOrderByNumberQuery(number)
}
