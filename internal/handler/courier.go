package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/service"
)

type CourierHandler struct {
	courierService service.CourierService
}

func NewCourierHandler(courierService service.CourierService) *CourierHandler {
	return &CourierHandler{courierService: courierService}
}

func (h *CourierHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	couriers, total, err := h.courierService.List(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(couriers, total, q))
}

func (h *CourierHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCourierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	courier, err := h.courierService.Create(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courier)
}

func (h *CourierHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCourierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	courier, err := h.courierService.Update(ctx, c.Param("courierID"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courier)
}

func (h *CourierHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.courierService.Delete(ctx, c.Param("courierID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CourierHandler) AssignToOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AssignCourierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	delivery, err := h.courierService.AssignToOrder(ctx, c.Param("orderID"), req.CourierID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, delivery)
}

func (h *CourierHandler) GetDelivery(c echo.Context) error {
	ctx := c.Request().Context()

	delivery, err := h.courierService.GetDelivery(ctx, c.Param("orderID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, delivery)
}

func (h *CourierHandler) UpdateDeliveryStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateDeliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	delivery, err := h.courierService.UpdateDeliveryStatus(ctx, c.Param("orderID"), model.DeliveryStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, delivery)
}
