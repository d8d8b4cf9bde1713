package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	ListByOrderID(ctx context.Context, orderID string) ([]*model.Payment, error)
	// FindSuccessful returns the successful payment of an order, if any.
	FindSuccessful(ctx context.Context, tx *gorm.DB, orderID string) (*model.Payment, error)
	// HasRefund reports whether a refund record already exists for the order.
	HasRefund(ctx context.Context, tx *gorm.DB, orderID string) (bool, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{db: db}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
		return apperr.FromDB(err, "payment", payment.PaymentID)
	}
	return nil
}

func (r *paymentRepoImpl) ListByOrderID(ctx context.Context, orderID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, apperr.FromDB(err, "payment", orderID)
	}
	return payments, nil
}

func (r *paymentRepoImpl) FindSuccessful(ctx context.Context, tx *gorm.DB, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := tx.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, model.PaymentSuccess).
		First(&payment).Error
	if err != nil {
		return nil, apperr.FromDB(err, "payment", orderID)
	}
	return &payment, nil
}

func (r *paymentRepoImpl) HasRefund(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentRefunded).
		Count(&count).Error
	if err != nil {
		return false, apperr.FromDB(err, "payment", orderID)
	}
	return count > 0, nil
}
