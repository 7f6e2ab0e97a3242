package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"manufacturing/internal/pkg/logger"
	"manufacturing/internal/pkg/metrics"
)

// NewRouter builds the echo instance serving the API, health, metrics and
// swagger endpoints.
func NewRouter(server *Server, m *metrics.Metrics, zl *zap.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = ErrorHandler(zl)
	e.Use(middleware.Recover(), logger.EchoMiddleware(zl))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	registerRoutes(api, server)
	return e, nil
}

func registerRoutes(g *echo.Group, s *Server) {
	g.POST("/customer-orders", s.CreateCustomerOrder)
	g.GET("/customer-orders", s.ListCustomerOrders)
	g.GET("/customer-orders/:id", s.GetCustomerOrder)
	g.DELETE("/customer-orders/:id", s.DeleteCustomerOrder)
	g.PATCH("/customer-orders/:id/status", s.UpdateCustomerOrderStatus)
	g.GET("/customer-orders/number/:number", s.GetCustomerOrderByNumber)

	g.POST("/warehouse-orders", s.CreateWarehouseOrder)
	g.GET("/warehouse-orders", s.ListWarehouseOrders)
	g.GET("/warehouse-orders/:id", s.GetWarehouseOrder)
	g.PATCH("/warehouse-orders/:id/status", s.UpdateWarehouseOrderStatus)
	g.POST("/warehouse-orders/:id/fulfill", s.FulfillWarehouseOrder)
	g.GET("/warehouse-orders/number/:number", s.GetWarehouseOrderByNumber)

	g.POST("/production-orders", s.CreateProductionOrder)
	g.GET("/production-orders", s.ListProductionOrders)
	g.GET("/production-orders/:id", s.GetProductionOrder)
	g.POST("/production-orders/:id/submit", s.SubmitProductionOrder)
	g.POST("/production-orders/:id/progress", s.UpdateProductionProgress)
	g.POST("/production-orders/:id/start", s.StartProduction)
	g.POST("/production-orders/:id/complete", s.CompleteProduction)
	g.POST("/production-orders/:id/control-orders", s.SynthesizeControlOrders)
	g.GET("/production-orders/number/:number", s.GetProductionOrderByNumber)
	g.GET("/schedules/:scheduleId/tasks", s.GetScheduledTasks)

	g.POST("/production-control-orders", s.CreateProductionControlOrder)
	g.POST("/assembly-control-orders", s.CreateAssemblyControlOrder)
	g.GET("/control-orders", s.ListControlOrders)
	g.GET("/control-orders/:id", s.GetControlOrder)
	g.GET("/control-orders/number/:number", s.GetControlOrderByNumber)
	g.PATCH("/control-orders/:id/record", s.UpdateControlOrderRecord)
	g.POST("/control-orders/:id/supply-orders", s.RequestSupplies)
	g.POST("/control-orders/:id/:action", s.ChangeControlOrderStatus)
	g.GET("/workstations/:workstationId/control-orders/active", s.ListActiveControlOrders)
	g.GET("/workstations/:workstationId/control-orders/unassigned", s.ListUnassignedControlOrders)

	g.POST("/supply-orders", s.CreateSupplyOrder)
	g.GET("/supply-orders", s.ListSupplyOrders)
	g.GET("/supply-orders/:id", s.GetSupplyOrder)
	g.PATCH("/supply-orders/:id/status", s.UpdateSupplyOrderStatus)
	g.POST("/supply-orders/:id/items/:partId/fulfill", s.FulfillSupplyItem)
	g.GET("/supply-orders/number/:number", s.GetSupplyOrderByNumber)
}
