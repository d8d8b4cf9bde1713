package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type OrderFilter struct {
	ListOptions
	Status model.OrderStatus
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	// FindByIDForUpdate locks the order row for the duration of tx.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error)
	GetItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error)
	List(ctx context.Context, filter OrderFilter) ([]*model.Order, int64, error)
	// TransitionStatus applies status = to only when status still equals
	// from; it reports whether this call won the update.
	TransitionStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) (bool, error)
	SetPaymentStatus(ctx context.Context, tx *gorm.DB, orderID string, status model.PaymentStatus) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return apperr.FromDB(err, "order", order.OrderID)
	}
	return nil
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		return apperr.FromDB(err, "order_item", "")
	}
	return nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, apperr.FromDB(err, "order", orderID)
	}
	return &order, nil
}

func (r *orderRepoImpl) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, apperr.FromDB(err, "order", orderID)
	}
	return &order, nil
}

func (r *orderRepoImpl) GetItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error
	if err != nil {
		return nil, apperr.FromDB(err, "order_item", orderID)
	}
	return items, nil
}

func (r *orderRepoImpl) List(ctx context.Context, filter OrderFilter) ([]*model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		q = q.Joins("JOIN customers ON customers.customer_id = orders.customer_id").
			Where("LOWER(customers.name) LIKE ? OR LOWER(customers.phone_number) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "order", "")
	}

	var orders []*model.Order
	if filter.OrderBy == "" {
		filter.OrderBy = "orders.created_at"
		filter.Desc = true
	}
	err := filter.ListOptions.paginate(q).
		Preload("Customer").
		Preload("Address").
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperr.FromDB(err, "order", "")
	}
	return orders, total, nil
}

func (r *orderRepoImpl) TransitionStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, apperr.FromDB(result.Error, "order", orderID)
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) SetPaymentStatus(ctx context.Context, tx *gorm.DB, orderID string, status model.PaymentStatus) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return apperr.FromDB(result.Error, "order", orderID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("order", orderID)
	}
	return nil
}
