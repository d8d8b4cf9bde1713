package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

// PaymentService reconciles payments against orders. Payment and delivery are
// independent axes: recording a successful payment never moves Order.Status,
// only Order.PaymentStatus.
type PaymentService interface {
	RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*model.Payment, error)
	// RefundOnCancel creates the compensating refund record for a paid order
	// being cancelled. It runs inside the cancellation transaction and is a
	// no-op when there is nothing to refund or the refund already exists.
	RefundOnCancel(ctx context.Context, tx *gorm.DB, order *model.Order) error
}

type paymentServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	errorLogSvc ErrorLogService
	log         *logrus.Logger
}

func NewPaymentService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	errorLogSvc ErrorLogService,
	log *logrus.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		errorLogSvc: errorLogSvc,
		log:         log,
	}
}

func (s *paymentServiceImpl) RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest) (*model.Payment, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Outcome == "failed" {
		return s.recordFailed(ctx, order, req)
	}

	// Any non-failed payment must match the order total exactly.
	if !req.Amount.Equal(order.TotalAmount) {
		s.errorLogSvc.Report(ctx, &order.OrderID, model.ErrorPayment,
			"payment amount "+req.Amount.String()+" does not match order total "+order.TotalAmount.String())
		return nil, apperr.AmountMismatch(req.Amount.String(), order.TotalAmount.String())
	}

	payment := &model.Payment{
		OrderID:        order.OrderID,
		Provider:       req.Provider,
		Amount:         req.Amount,
		Status:         model.PaymentSuccess,
		TransactionRef: req.TransactionRef,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}
		return s.orderRepo.SetPaymentStatus(ctx, tx, order.OrderID, model.PaymentStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   order.OrderID,
		"payment_id": payment.PaymentID,
		"amount":     payment.Amount.String(),
	}).Info("payment recorded")
	return payment, nil
}

func (s *paymentServiceImpl) recordFailed(ctx context.Context, order *model.Order, req dto.RecordPaymentRequest) (*model.Payment, error) {
	payment := &model.Payment{
		OrderID:        order.OrderID,
		Provider:       req.Provider,
		Amount:         req.Amount,
		Status:         model.PaymentFailed,
		TransactionRef: req.TransactionRef,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}
		return s.orderRepo.SetPaymentStatus(ctx, tx, order.OrderID, model.PaymentStatusFailed)
	})
	if err != nil {
		return nil, err
	}

	s.errorLogSvc.Report(ctx, &order.OrderID, model.ErrorPayment,
		"payment via "+req.Provider+" failed (ref "+req.TransactionRef+")")
	return payment, nil
}

func (s *paymentServiceImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.Payment, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByOrderID(ctx, orderID)
}

func (s *paymentServiceImpl) RefundOnCancel(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	paid, err := s.paymentRepo.FindSuccessful(ctx, tx, order.OrderID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	exists, err := s.paymentRepo.HasRefund(ctx, tx, order.OrderID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	refund := &model.Payment{
		OrderID:        order.OrderID,
		Provider:       paid.Provider,
		Amount:         paid.Amount,
		Status:         model.PaymentRefunded,
		TransactionRef: "refund-" + paid.TransactionRef,
	}
	if err := s.paymentRepo.Create(ctx, tx, refund); err != nil {
		return err
	}
	if err := s.orderRepo.SetPaymentStatus(ctx, tx, order.OrderID, model.PaymentStatusRefunded); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":  order.OrderID,
		"refund_id": refund.PaymentID,
		"amount":    refund.Amount.String(),
	}).Info("refund recorded for cancelled order")
	return nil
}
