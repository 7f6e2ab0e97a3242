package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
)

// CreateSupplyOrder handles POST /api/v1/supply-orders.
func (s *Server) CreateSupplyOrder(c echo.Context) error {
	var body NewSupplyOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	sourceID, err := parseUUID("sourceControlOrderId", body.SourceControlOrderID)
	if err != nil {
		return s.fail(c, err)
	}
	sourceType, err := controlorder.ParseType(body.SourceType)
	if err != nil {
		return s.fail(c, err)
	}
	priority, err := kernel.ParsePriority(body.Priority)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateSupplyOrderCommand(
		sourceID,
		sourceType,
		kernel.WorkstationID(body.RequestingWorkstationID),
		priority,
		body.NeededBy,
		toSupplyLines(body.Items),
		body.Notes,
	)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.CreateSupplyOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toSupplyOrder(order))
}

// ListSupplyOrders handles GET /api/v1/supply-orders.
func (s *Server) ListSupplyOrders(c echo.Context) error {
	requesting, err := queryWorkstation(c, "requestingWorkstationId")
	if err != nil {
		return s.fail(c, err)
	}
	supplying, err := queryWorkstation(c, "supplyWorkstationId")
	if err != nil {
		return s.fail(c, err)
	}
	status, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}
	sourceID, err := queryUUID(c, "sourceControlOrderId")
	if err != nil {
		return s.fail(c, err)
	}
	sourceType, err := queryString(c, "sourceType")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewSupplyOrdersQuery(requesting, supplying, status, sourceID, sourceType)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.ListSupplyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toSupplyOrder))
}

// GetSupplyOrder handles GET /api/v1/supply-orders/{id}.
func (s *Server) GetSupplyOrder(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetSupplyOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSupplyOrder(order))
}

// GetSupplyOrderByNumber handles GET /api/v1/supply-orders/number/{number}.
func (s *Server) GetSupplyOrderByNumber(c echo.Context) error {
	query, err := getByNumberQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetSupplyOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSupplyOrder(order))
}

// UpdateSupplyOrderStatus handles PATCH /api/v1/supply-orders/{id}/status.
func (s *Server) UpdateSupplyOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusChange
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateSupplyOrderStatusCommand(id, body.Status, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.UpdateSupplyOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSupplyOrder(order))
}

// FulfillSupplyItem handles POST /api/v1/supply-orders/{id}/items/{partId}/fulfill.
func (s *Server) FulfillSupplyItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	partID, err := pathInt64(c, "partId")
	if err != nil {
		return s.fail(c, err)
	}
	var body SupplyFulfillment
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewFulfillSupplyItemCommand(id, partID, body.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.FulfillSupplyItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSupplyOrder(order))
}

func toSupplyLines(items []NewSupplyItem) []commands.SupplyLine {
	lines := make([]commands.SupplyLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, commands.SupplyLine{
			PartID:   item.PartID,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Notes:    item.Notes,
		})
	}
	return lines
}
