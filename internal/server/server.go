package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/handler"
	appmw "delivery-admin-api/internal/middleware"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/service"
)

type Server struct {
	echo             *echo.Echo
	orderHandler     *handler.OrderHandler
	customerHandler  *handler.CustomerHandler
	productHandler   *handler.ProductHandler
	vendorHandler    *handler.VendorHandler
	courierHandler   *handler.CourierHandler
	dashboardHandler *handler.DashboardHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.Wrap(apperr.KindValidation, err, "invalid request")
	}
	return nil
}

func NewServer(
	orderService service.OrderService,
	paymentService service.PaymentService,
	customerService service.CustomerService,
	catalogService service.CatalogService,
	courierService service.CourierService,
	dashboardService service.DashboardService,
	errorLogService service.ErrorLogService,
	log *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.AuthMiddleware())

	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = newErrorHandler(errorLogService, log)

	s := &Server{
		echo:             e,
		orderHandler:     handler.NewOrderHandler(orderService, paymentService),
		customerHandler:  handler.NewCustomerHandler(customerService),
		productHandler:   handler.NewProductHandler(catalogService),
		vendorHandler:    handler.NewVendorHandler(catalogService),
		courierHandler:   handler.NewCourierHandler(courierService),
		dashboardHandler: handler.NewDashboardHandler(dashboardService, errorLogService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/dashboard", s.dashboardHandler.Stats)
	api.GET("/error-logs", s.dashboardHandler.ListErrorLogs)

	customers := api.Group("/customers")
	customers.GET("", s.customerHandler.List)
	customers.POST("", s.customerHandler.Create)
	customers.GET("/:customerID", s.customerHandler.Get)
	customers.POST("/:customerID/addresses", s.customerHandler.AddAddress)

	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.POST("", s.productHandler.Create)
	products.GET("/:productID", s.productHandler.Get)
	products.PATCH("/:productID", s.productHandler.Update)
	products.DELETE("/:productID", s.productHandler.Delete)

	vendors := api.Group("/vendors")
	vendors.GET("", s.vendorHandler.List)
	vendors.POST("", s.vendorHandler.Create)
	vendors.PUT("/:vendorID", s.vendorHandler.Update)

	couriers := api.Group("/couriers")
	couriers.GET("", s.courierHandler.List)
	couriers.POST("", s.courierHandler.Create)
	couriers.PUT("/:courierID", s.courierHandler.Update)
	couriers.DELETE("/:courierID", s.courierHandler.Delete)

	orders := api.Group("/orders")
	orders.GET("", s.orderHandler.List)
	orders.POST("", s.orderHandler.Create)
	orders.GET("/:orderID", s.orderHandler.Get)
	orders.POST("/:orderID/transition", s.orderHandler.Transition)
	orders.POST("/:orderID/cancel", s.orderHandler.Cancel)
	orders.POST("/:orderID/payments", s.orderHandler.RecordPayment)
	orders.GET("/:orderID/payments", s.orderHandler.ListPayments)
	orders.POST("/:orderID/delivery", s.courierHandler.AssignToOrder)
	orders.GET("/:orderID/delivery", s.courierHandler.GetDelivery)
	orders.PATCH("/:orderID/delivery", s.courierHandler.UpdateDeliveryStatus)
}

// newErrorHandler maps apperr kinds to HTTP statuses. Unclassified failures
// get a system_error row in the error log and a generic 500, never the raw
// error text.
func newErrorHandler(errorLogService service.ErrorLogService, log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, map[string]interface{}{"error": httpErr.Message})
			return
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status := apperr.HTTPStatus(appErr)
			body := map[string]interface{}{
				"error": appErr.Message,
				"kind":  appErr.Kind,
			}
			if apperr.Retryable(appErr) {
				body["retryable"] = true
			}
			_ = c.JSON(status, body)
			return
		}

		log.WithError(err).Error("unhandled error")
		errorLogService.Report(context.WithoutCancel(c.Request().Context()), nil, model.ErrorSystem, err.Error())
		_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "internal server error",
			"kind":  apperr.KindInternal,
		})
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
