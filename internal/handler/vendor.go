package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/service"
)

type VendorHandler struct {
	catalogService service.CatalogService
}

func NewVendorHandler(catalogService service.CatalogService) *VendorHandler {
	return &VendorHandler{catalogService: catalogService}
}

func (h *VendorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	vendors, total, err := h.catalogService.ListVendors(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(vendors, total, q))
}

func (h *VendorHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateVendorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vendor, err := h.catalogService.CreateVendor(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateVendorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vendor, err := h.catalogService.UpdateVendor(ctx, c.Param("vendorID"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vendor)
}
