package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

// StatsRepository answers the dashboard's aggregates at the store boundary;
// no client-side summing over fetched rows.
type StatsRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	// PaidRevenue is SUM(total_amount) over orders with payment_status=paid,
	// computed in one aggregate query.
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]*model.Order, error)
}

type statsRepoImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepoImpl{db: db}
}

func (r *statsRepoImpl) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, apperr.FromDB(err, "order", "")
}

func (r *statsRepoImpl) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, apperr.FromDB(err, "order", "")
}

func (r *statsRepoImpl) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error
	return count, apperr.FromDB(err, "customer", "")
}

func (r *statsRepoImpl) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, apperr.FromDB(err, "product", "")
}

func (r *statsRepoImpl) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, apperr.FromDB(err, "order", "")
	}
	return row.Revenue, nil
}

func (r *statsRepoImpl) RecentOrders(ctx context.Context, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Address").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.FromDB(err, "order", "")
	}
	return orders, nil
}
