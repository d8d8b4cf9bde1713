package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-admin-api/internal/dto"
)

func TestCustomerListWithAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 100)

	for i := 0; i < 3; i++ {
		_, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
			CustomerID: customer.CustomerID,
			AddressID:  address.AddressID,
			Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
		})
		require.NoError(t, err)
	}

	// a second customer with no orders
	other, err := f.customerSvc.Create(ctx, dto.CreateCustomerRequest{
		Name:        "No Orders",
		PhoneNumber: "0500000009",
	})
	require.NoError(t, err)

	summaries, total, err := f.customerSvc.List(ctx, dto.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, summaries, 2)

	byID := map[string]*dto.CustomerSummary{}
	for _, s := range summaries {
		byID[s.CustomerID] = s
	}
	require.Contains(t, byID, customer.CustomerID)
	assert.EqualValues(t, 3, byID[customer.CustomerID].OrderCount)
	assert.True(t, byID[customer.CustomerID].TotalSpent.Equal(decimal.RequireFromString("60")))

	require.Contains(t, byID, other.CustomerID)
	assert.Zero(t, byID[other.CustomerID].OrderCount)
	assert.True(t, byID[other.CustomerID].TotalSpent.IsZero())
}

func TestCustomerSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCustomer(t)

	summaries, total, err := f.customerSvc.List(ctx, dto.ListQuery{Search: "test cust"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, summaries, 1)

	_, total, err = f.customerSvc.List(ctx, dto.ListQuery{Search: "missing"})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAddAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, _ := f.seedCustomer(t)

	address, err := f.customerSvc.AddAddress(ctx, customer.CustomerID, dto.CreateAddressRequest{
		AddressLine: "2 Other Street",
		City:        "Jeddah",
		PostalCode:  "21577",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, address.AddressID)

	reloaded, err := f.customerSvc.Get(ctx, customer.CustomerID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Addresses, 2)
}
