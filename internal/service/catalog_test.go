package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
)

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vendor := f.seedVendor(t)

	product, err := f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{
		VendorID:      vendor.VendorID,
		Name:          "Espresso Beans",
		Description:   "1kg bag",
		Price:         decimal.RequireFromString("45.50"),
		StockQuantity: 20,
		Category:      "coffee",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ProductID)
	assert.True(t, product.IsActive)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	f := newFixture(t)
	vendor := f.seedVendor(t)

	_, err := f.catalogSvc.CreateProduct(context.Background(), dto.CreateProductRequest{
		VendorID: vendor.VendorID,
		Name:     "Broken",
		Price:    decimal.RequireFromString("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateProductUnknownVendor(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalogSvc.CreateProduct(context.Background(), dto.CreateProductRequest{
		VendorID: "missing",
		Name:     "Orphan",
		Price:    decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateProductCannotTouchStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	name := "Renamed"
	inactive := false
	updated, err := f.catalogSvc.UpdateProduct(ctx, product.ProductID, dto.UpdateProductRequest{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)
	// the update surface has no stock field at all; stock is unchanged
	assert.EqualValues(t, 5, updated.StockQuantity)
}

func TestInactiveProductCannotBeOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	inactive := false
	_, err := f.catalogSvc.UpdateProduct(ctx, product.ProductID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.EqualValues(t, 5, f.stockOf(t, product.ProductID))
}

func TestListProductsByCategoryAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vendor := f.seedVendor(t)

	for _, p := range []struct {
		name, category string
	}{
		{"Espresso Beans", "coffee"},
		{"French Press", "equipment"},
		{"Filter Coffee", "coffee"},
	} {
		_, err := f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{
			VendorID: vendor.VendorID,
			Name:     p.name,
			Price:    decimal.RequireFromString("10"),
			Category: p.category,
		})
		require.NoError(t, err)
	}

	coffee, total, err := f.catalogSvc.ListProducts(ctx, dto.ListQuery{Category: "coffee"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, coffee, 2)

	matched, total, err := f.catalogSvc.ListProducts(ctx, dto.ListQuery{Search: "espresso"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, matched, 1)
	assert.Equal(t, "Espresso Beans", matched[0].Name)
}
