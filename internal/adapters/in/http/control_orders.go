package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
)

// CreateProductionControlOrder handles POST /api/v1/production-control-orders.
func (s *Server) CreateProductionControlOrder(c echo.Context) error {
	return s.createControlOrder(c, controlorder.Production)
}

// CreateAssemblyControlOrder handles POST /api/v1/assembly-control-orders.
func (s *Server) CreateAssemblyControlOrder(c echo.Context) error {
	return s.createControlOrder(c, controlorder.Assembly)
}

func (s *Server) createControlOrder(c echo.Context, typ controlorder.Type) error {
	var body NewControlOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	draft, err := body.toDraft(typ)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateControlOrderCommand(draft)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.CreateControlOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedControlOrder{
		ID:                 order.ID().String(),
		ControlOrderNumber: order.Number(),
	})
}

func (b NewControlOrder) toDraft(typ controlorder.Type) (controlorder.Draft, error) {
	productionOrderID, err := parseUUID("sourceProductionOrderId", b.SourceProductionOrderID)
	if err != nil {
		return controlorder.Draft{}, err
	}
	priority, err := kernel.ParsePriority(b.Priority)
	if err != nil {
		return controlorder.Draft{}, err
	}
	start, err := parseTime("targetStartTime", b.TargetStartTime)
	if err != nil {
		return controlorder.Draft{}, err
	}
	completion, err := parseTime("targetCompletionTime", b.TargetCompletionTime)
	if err != nil {
		return controlorder.Draft{}, err
	}

	return controlorder.Draft{
		Type:              typ,
		ProductionOrderID: productionOrderID,
		WorkstationID:     kernel.WorkstationID(b.AssignedWorkstationID),
		ScheduleID:        b.SimalScheduleID,
		Priority:          priority,
		TargetStart:       start,
		TargetCompletion:  completion,
		Details: controlorder.Details{
			Instructions:             b.Instructions,
			QualityCheckpoints:       b.QualityCheckpoints,
			SafetyProcedures:         b.SafetyProcedures,
			EstimatedDurationMinutes: b.EstimatedDurationMinutes,
			TestingProcedures:        b.TestingProcedures,
			PackagingRequirements:    b.PackagingRequirements,
		},
	}, nil
}

// ListControlOrders handles GET /api/v1/control-orders.
func (s *Server) ListControlOrders(c echo.Context) error {
	orderType, err := queryString(c, "type")
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
	productionOrderID, err := queryUUID(c, "productionOrderId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewControlOrdersQuery(orderType, ws, status, productionOrderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.listControlOrders(c, query)
}

// ListActiveControlOrders handles GET /api/v1/workstations/{workstationId}/control-orders/active.
func (s *Server) ListActiveControlOrders(c echo.Context) error {
	ws, err := pathInt64(c, "workstationId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewActiveControlOrdersQuery(kernel.WorkstationID(ws))
	if err != nil {
		return s.fail(c, err)
	}
	return s.listControlOrders(c, query)
}

// ListUnassignedControlOrders handles GET /api/v1/workstations/{workstationId}/control-orders/unassigned.
func (s *Server) ListUnassignedControlOrders(c echo.Context) error {
	ws, err := pathInt64(c, "workstationId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewUnassignedControlOrdersQuery(kernel.WorkstationID(ws))
	if err != nil {
		return s.fail(c, err)
	}
	return s.listControlOrders(c, query)
}

func (s *Server) listControlOrders(c echo.Context, query queries.ListOrdersQuery[ports.ControlOrderFilter]) error {
	orders, err := s.h.ListControlOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toControlOrder))
}

// GetControlOrder handles GET /api/v1/control-orders/{id}.
func (s *Server) GetControlOrder(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetControlOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toControlOrder(order))
}

// GetControlOrderByNumber handles GET /api/v1/control-orders/number/{number}.
func (s *Server) GetControlOrderByNumber(c echo.Context) error {
	query, err := getByNumberQuery(c)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.GetControlOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toControlOrder(order))
}

// ChangeControlOrderStatus handles POST /api/v1/control-orders/{id}/{action}
// where action is start, complete, halt, resume or cancel.
func (s *Server) ChangeControlOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	action, err := pathString(c, "action")
	if err != nil {
		return s.fail(c, err)
	}
	var body ControlOrderAction
	if c.Request().ContentLength > 0 {
		if err = c.Bind(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	cmd, err := commands.NewChangeControlOrderStatusCommand(id, commands.ControlOrderAction(action), body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.ChangeControlOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toControlOrder(order))
}

// UpdateControlOrderRecord handles PATCH /api/v1/control-orders/{id}/record.
func (s *Server) UpdateControlOrderRecord(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body ControlOrderRecord
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var defects *commands.DefectsRecord
	if body.Defects != nil {
		defects = &commands.DefectsRecord{
			Found:          body.Defects.Found,
			Reworked:       body.Defects.Reworked,
			ReworkRequired: body.Defects.ReworkRequired,
		}
	}
	cmd, err := commands.NewUpdateControlOrderRecordCommand(id, body.OperatorNotes, defects, body.ShippingNotes)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.UpdateControlOrderRecord.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toControlOrder(order))
}

// RequestSupplies handles POST /api/v1/control-orders/{id}/supply-orders.
func (s *Server) RequestSupplies(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body SupplyRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRequestSuppliesCommand(id, body.NeededBy, toSupplyLines(body.Items), body.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	order, err := s.h.RequestSupplies.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toSupplyOrder(order))
}
