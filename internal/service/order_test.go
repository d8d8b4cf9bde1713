package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
)

func TestCreateOrderComputesTotalAndReservesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	productA := f.seedProduct(t, vendor.VendorID, "10", 5)
	productB := f.seedProduct(t, vendor.VendorID, "5", 10)

	order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items: []dto.OrderItemRequest{
			{ProductID: productA.ProductID, Quantity: 3},
			{ProductID: productB.ProductID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("35")),
		"total_amount = %s", order.TotalAmount)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
	assert.EqualValues(t, 2, f.stockOf(t, productA.ProductID))
	assert.EqualValues(t, 9, f.stockOf(t, productB.ProductID))

	// stored total always matches the recomputed one
	items := make([]*model.OrderItem, len(order.Items))
	for i := range order.Items {
		items[i] = &order.Items[i]
	}
	assert.True(t, order.TotalAmount.Equal(RecomputeTotal(items)))
}

func TestCreateOrderInsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	productA := f.seedProduct(t, vendor.VendorID, "10", 2)
	productB := f.seedProduct(t, vendor.VendorID, "5", 10)

	// productB is reserved first in item order, then productA fails; the
	// whole creation must roll back, including productB's reservation.
	_, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items: []dto.OrderItemRequest{
			{ProductID: productB.ProductID, Quantity: 1},
			{ProductID: productA.ProductID, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	assert.EqualValues(t, 2, f.stockOf(t, productA.ProductID))
	assert.EqualValues(t, 10, f.stockOf(t, productB.ProductID))

	var orderCount int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount, "no order row after failed creation")

	// the failure shows up in the operational error log
	var logCount int64
	require.NoError(t, f.db.Model(&model.ErrorLog{}).
		Where("error_type = ?", model.ErrorStock).
		Count(&logCount).Error)
	assert.EqualValues(t, 1, logCount)
}

func TestCreateOrderRejectsEmptyItemList(t *testing.T) {
	f := newFixture(t)
	customer, address := f.seedCustomer(t)

	_, err := f.orderSvc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      nil,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyOrder, apperr.KindOf(err))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)
	customer, address := f.seedCustomer(t)

	_, err := f.orderSvc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: "missing", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateOrderSnapshotsPriceAtOrderTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 1}},
	})
	require.NoError(t, err)

	// later price change must not leak into the stored item
	require.NoError(t, f.db.Model(&model.Product{}).
		Where("product_id = ?", product.ProductID).
		Update("price", decimal.RequireFromString("99")).Error)

	reloaded, err := f.orderSvc.Get(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("10")))
	assert.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("10")))
}

func TestTransitionHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 1)

	for _, status := range []model.OrderStatus{
		model.OrderConfirmed, model.OrderDispatched, model.OrderDelivered,
	} {
		updated, err := f.orderSvc.Transition(ctx, order.OrderID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestTransitionRejectsIllegalEdges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 1)

	_, err := f.orderSvc.Transition(ctx, order.OrderID, model.OrderDelivered)
	require.Error(t, err)
	assert.Equal(t, apperr.KindIllegalTransition, apperr.KindOf(err))

	// state is unchanged after the rejection
	reloaded, err := f.orderSvc.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, reloaded.Status)
}

func TestDeliveredOrderCannotMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 1)

	for _, status := range []model.OrderStatus{
		model.OrderConfirmed, model.OrderDispatched, model.OrderDelivered,
	} {
		_, err := f.orderSvc.Transition(ctx, order.OrderID, status)
		require.NoError(t, err)
	}

	_, err := f.orderSvc.Transition(ctx, order.OrderID, model.OrderConfirmed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindIllegalTransition, apperr.KindOf(err))

	_, err = f.orderSvc.Cancel(ctx, order.OrderID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindIllegalTransition, apperr.KindOf(err))

	reloaded, err := f.orderSvc.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderDelivered, reloaded.Status)
}

func TestCancelReleasesReservedStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, f.stockOf(t, product.ProductID))

	_, err = f.orderSvc.Transition(ctx, order.OrderID, model.OrderConfirmed)
	require.NoError(t, err)
	_, err = f.orderSvc.Transition(ctx, order.OrderID, model.OrderDispatched)
	require.NoError(t, err)

	cancelled, err := f.orderSvc.Cancel(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, cancelled.Status)
	assert.EqualValues(t, 5, f.stockOf(t, product.ProductID))
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.orderSvc.Cancel(ctx, order.OrderID)
	require.NoError(t, err)
	require.EqualValues(t, 5, f.stockOf(t, product.ProductID))

	// retried cancellation must not release stock a second time
	again, err := f.orderSvc.Cancel(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, again.Status)
	assert.EqualValues(t, 5, f.stockOf(t, product.ProductID))
}

func TestConcurrentCancelReleasesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 5)

	order, err := f.orderSvc.Create(ctx, dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 3}},
	})
	require.NoError(t, err)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.orderSvc.Cancel(ctx, order.OrderID)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}

	assert.EqualValues(t, 5, f.stockOf(t, product.ProductID))
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createOrder(t, 1)
	second := f.createOrder(t, 1)

	_, err := f.orderSvc.Transition(ctx, second.OrderID, model.OrderConfirmed)
	require.NoError(t, err)

	pending, total, err := f.orderSvc.List(ctx, dto.ListQuery{Status: "pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, first.OrderID, pending[0].OrderID)

	all, total, err := f.orderSvc.List(ctx, dto.ListQuery{Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	_, _, err = f.orderSvc.List(ctx, dto.ListQuery{Status: "bogus"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// createOrder seeds a customer, vendor and one product (price 10, stock 100)
// and places an order for the given quantity.
func (f *fixture) createOrder(t *testing.T, quantity int64) *model.Order {
	t.Helper()

	customer, address := f.seedCustomer(t)
	vendor := f.seedVendor(t)
	product := f.seedProduct(t, vendor.VendorID, "10", 100)

	order, err := f.orderSvc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: customer.CustomerID,
		AddressID:  address.AddressID,
		Items:      []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: quantity}},
	})
	require.NoError(t, err)
	return order
}
