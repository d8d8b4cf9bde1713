package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context, q dto.ListQuery) ([]*model.Order, int64, error)
	// Transition moves the order along a legal edge of the status machine.
	Transition(ctx context.Context, orderID string, to model.OrderStatus) (*model.Order, error)
	// Cancel is Transition into cancelled, with the compensating actions of
	// the cancellation policy. Retried cancellations are idempotent.
	Cancel(ctx context.Context, orderID string) (*model.Order, error)
}

type orderServiceImpl struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledger       InventoryLedger
	paymentSvc   PaymentService
	errorLogSvc  ErrorLogService
	log          *logrus.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledger InventoryLedger,
	paymentSvc PaymentService,
	errorLogSvc ErrorLogService,
	log *logrus.Logger,
) OrderService {
	return &orderServiceImpl{
		db:           db,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		paymentSvc:   paymentSvc,
		errorLogSvc:  errorLogSvc,
		log:          log,
	}
}

// RecomputeTotal derives an order total from its items. The stored
// total_amount is always re-derivable through this function; it exists for
// creation and for audit, never as a second source of truth.
func RecomputeTotal(items []*model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// Create builds the order aggregate in one transaction: price snapshots,
// stock reservations and the order rows commit or roll back together, so no
// reader ever observes an order with under-reserved stock.
func (s *orderServiceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.EmptyOrder()
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "item quantity must be positive, got %d for product %s", item.Quantity, item.ProductID)
		}
	}

	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	address, err := s.customerRepo.FindAddress(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}
	if address.CustomerID != req.CustomerID {
		return nil, apperr.New(apperr.KindValidation, "address %s does not belong to customer %s", req.AddressID, req.CustomerID)
	}

	productIDs := make([]string, len(req.Items))
	quantities := make(map[string]int64, len(req.Items))
	for i, item := range req.Items {
		if _, dup := quantities[item.ProductID]; dup {
			return nil, apperr.New(apperr.KindValidation, "duplicate product %s in item list", item.ProductID)
		}
		productIDs[i] = item.ProductID
		quantities[item.ProductID] = item.Quantity
	}

	order := &model.Order{
		CustomerID:    req.CustomerID,
		AddressID:     req.AddressID,
		Status:        model.OrderPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.FindMany(ctx, tx, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[string]*model.Product, len(products))
		for _, p := range products {
			byID[p.ProductID] = p
		}

		items := make([]*model.OrderItem, 0, len(req.Items))
		for _, reqItem := range req.Items {
			product, ok := byID[reqItem.ProductID]
			if !ok {
				return apperr.NotFound("product", reqItem.ProductID)
			}
			if !product.IsActive {
				return apperr.New(apperr.KindValidation, "product %s is not active", product.ProductID)
			}
			// A failed reservation aborts the transaction, rolling back every
			// reservation made so far in this call.
			if err := s.ledger.Reserve(ctx, tx, product.ProductID, reqItem.Quantity); err != nil {
				return err
			}
			items = append(items, &model.OrderItem{
				ProductID: product.ProductID,
				Quantity:  reqItem.Quantity,
				Price:     product.Price,
			})
		}

		order.TotalAmount = RecomputeTotal(items)
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.OrderID
		}
		return s.orderRepo.CreateItems(ctx, tx, items)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInsufficientStock {
			s.errorLogSvc.Report(ctx, nil, model.ErrorStock, err.Error())
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":     order.OrderID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount.String(),
		"items":        len(req.Items),
	}).Info("order created")
	return s.orderRepo.FindByID(ctx, order.OrderID)
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) List(ctx context.Context, q dto.ListQuery) ([]*model.Order, int64, error) {
	filter := repository.OrderFilter{
		ListOptions: repository.ListOptions{
			Search:  q.Search,
			Page:    q.Page,
			PerPage: q.PerPage,
		},
	}
	if q.Status != "" && q.Status != "all" {
		status := model.OrderStatus(q.Status)
		if !status.Valid() {
			return nil, 0, apperr.New(apperr.KindValidation, "unknown order status %q", q.Status)
		}
		filter.Status = status
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *orderServiceImpl) Transition(ctx context.Context, orderID string, to model.OrderStatus) (*model.Order, error) {
	if !to.Valid() {
		return nil, apperr.New(apperr.KindValidation, "unknown order status %q", to)
	}
	if to == model.OrderCancelled {
		return s.Cancel(ctx, orderID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(to) {
			return apperr.IllegalTransition(string(order.Status), string(to))
		}
		won, err := s.orderRepo.TransitionStatus(ctx, tx, orderID, order.Status, to)
		if err != nil {
			return err
		}
		if !won {
			// The row moved between the locked read and the update; treat it
			// as a lost race.
			return apperr.IllegalTransition(string(order.Status), string(to))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   to,
	}).Info("order status updated")
	return s.orderRepo.FindByID(ctx, orderID)
}

// Cancel releases every reserved item quantity and, for a paid order, records
// the compensating refund — all inside the same transaction as the status
// flip. The conditional status update makes the compensation exactly-once: a
// concurrent or retried cancel finds the order already cancelled and returns
// it unchanged.
func (s *orderServiceImpl) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	var cancelled bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status == model.OrderCancelled {
			return nil
		}
		if !order.Status.CanTransition(model.OrderCancelled) {
			return apperr.IllegalTransition(string(order.Status), string(model.OrderCancelled))
		}

		won, err := s.orderRepo.TransitionStatus(ctx, tx, orderID, order.Status, model.OrderCancelled)
		if err != nil {
			return err
		}
		if !won {
			return apperr.IllegalTransition(string(order.Status), string(model.OrderCancelled))
		}

		items, err := s.orderRepo.GetItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.ledger.Release(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.paymentSvc.RefundOnCancel(ctx, tx, order); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled {
		s.log.WithFields(logrus.Fields{"order_id": orderID}).Info("order cancelled")
	}
	return s.orderRepo.FindByID(ctx, orderID)
}
