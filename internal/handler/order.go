package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/service"
)

type OrderHandler struct {
	orderService   service.OrderService
	paymentService service.PaymentService
}

func NewOrderHandler(orderService service.OrderService, paymentService service.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	orders, total, err := h.orderService.List(ctx, q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginated(orders, total, q))
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, c.Param("orderID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderService.Create(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Transition(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderService.Transition(ctx, c.Param("orderID"), model.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Cancel(ctx, c.Param("orderID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.paymentService.RecordPayment(ctx, c.Param("orderID"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *OrderHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.ListByOrder(ctx, c.Param("orderID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

func paginated(items any, total int64, q dto.ListQuery) *dto.Paginated {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 10
	}
	return &dto.Paginated{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
