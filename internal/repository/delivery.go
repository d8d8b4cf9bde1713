package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *model.OrderDelivery) error
	FindByOrderID(ctx context.Context, orderID string) (*model.OrderDelivery, error)
	UpdateStatus(ctx context.Context, deliveryID string, status model.DeliveryStatus) error
}

type deliveryRepoImpl struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepoImpl{db: db}
}

func (r *deliveryRepoImpl) Create(ctx context.Context, delivery *model.OrderDelivery) error {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return apperr.FromDB(err, "delivery", delivery.DeliveryID)
	}
	return nil
}

func (r *deliveryRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.OrderDelivery, error) {
	var delivery model.OrderDelivery
	err := r.db.WithContext(ctx).
		Preload("Courier").
		Where("order_id = ?", orderID).
		First(&delivery).Error
	if err != nil {
		return nil, apperr.FromDB(err, "delivery", orderID)
	}
	return &delivery, nil
}

func (r *deliveryRepoImpl) UpdateStatus(ctx context.Context, deliveryID string, status model.DeliveryStatus) error {
	result := r.db.WithContext(ctx).Model(&model.OrderDelivery{}).
		Where("delivery_id = ?", deliveryID).
		Update("status", status)
	if result.Error != nil {
		return apperr.FromDB(result.Error, "delivery", deliveryID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("delivery", deliveryID)
	}
	return nil
}
