package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/repository"
)

// InventoryLedger owns every stock movement. Reserve and Release run inside
// the caller's transaction so a failed order creation or a cancellation rolls
// back or applies together with its stock effects.
type InventoryLedger interface {
	Reserve(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error
	Release(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error
}

type inventoryLedgerImpl struct {
	productRepo repository.ProductRepository
	log         *logrus.Logger
}

func NewInventoryLedger(productRepo repository.ProductRepository, log *logrus.Logger) InventoryLedger {
	return &inventoryLedgerImpl{
		productRepo: productRepo,
		log:         log,
	}
}

// Reserve decrements stock, failing with InsufficientStock when the product
// cannot cover the requested quantity. The decrement is conditional at the
// store, so concurrent reservations against the same product cannot jointly
// oversell it.
func (l *inventoryLedgerImpl) Reserve(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error {
	if quantity <= 0 {
		return apperr.New(apperr.KindValidation, "reserve quantity must be positive, got %d", quantity)
	}
	if err := l.productRepo.DecrementStock(ctx, tx, productID, quantity); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{
		"product_id": productID,
		"quantity":   quantity,
	}).Debug("stock reserved")
	return nil
}

// Release adds reserved stock back, e.g. on cancellation.
func (l *inventoryLedgerImpl) Release(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error {
	if quantity <= 0 {
		return apperr.New(apperr.KindValidation, "release quantity must be positive, got %d", quantity)
	}
	if err := l.productRepo.IncrementStock(ctx, tx, productID, quantity); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{
		"product_id": productID,
		"quantity":   quantity,
	}).Debug("stock released")
	return nil
}
