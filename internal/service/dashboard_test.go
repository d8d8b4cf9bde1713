package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 100)

	var orders []*model.Order
	for i := 0; i < 3; i++ {
		order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
			CustomerID: customer.CustomerID,
			AddressID:  address.AddressID,
			Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
		})
		require.NoError(t, err)
		orders = append(orders, order)
	}

	// only paid orders count toward revenue
	_, err := f.paymentSvc.RecordPayment(ctx, orders[0].OrderID, dto.RecordPaymentRequest{
		Provider:       "stripe",
		Amount:         decimal.RequireFromString("20"),
		TransactionRef: "txn-d1",
		Outcome:        "success",
	})
	require.NoError(t, err)

	_, err = f.orderSvc.Transition(ctx, orders[1].OrderID, model.OrderConfirmed)
	require.NoError(t, err)

	stats, err := f.dashboardSvc.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.TotalCustomers)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.PendingOrders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("20")),
		"revenue = %s", stats.TotalRevenue)
	assert.Len(t, stats.RecentOrders, 3)
	require.NotNil(t, stats.RecentOrders[0].Customer)
	assert.Equal(t, customer.Name, stats.RecentOrders[0].Customer.Name)
}

func TestDashboardStatsEmptyDatabase(t *testing.T) {
	f := newFixture(t)

	stats, err := f.dashboardSvc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Empty(t, stats.RecentOrders)
}
