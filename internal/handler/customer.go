package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/service"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	customers, total, err := h.customerService.List(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(customers, total, q))
}

func (h *CustomerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	customer, err := h.customerService.Get(ctx, c.Param("customerID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerService.Create(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address, err := h.customerService.AddAddress(ctx, c.Param("customerID"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, address)
}
