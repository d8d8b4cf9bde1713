package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

// CourierService covers courier management and delivery assignment.
type CourierService interface {
	Create(ctx context.Context, req dto.CreateCourierRequest) (*model.Courier, error)
	List(ctx context.Context, q dto.ListQuery) ([]*model.Courier, int64, error)
	Update(ctx context.Context, courierID string, req dto.CreateCourierRequest) (*model.Courier, error)
	Delete(ctx context.Context, courierID string) error

	// AssignToOrder creates the delivery record for a dispatched order and
	// hands it a tracking number.
	AssignToOrder(ctx context.Context, orderID, courierID string) (*model.OrderDelivery, error)
	GetDelivery(ctx context.Context, orderID string) (*model.OrderDelivery, error)
	UpdateDeliveryStatus(ctx context.Context, orderID string, status model.DeliveryStatus) (*model.OrderDelivery, error)
}

type courierServiceImpl struct {
	courierRepo  repository.CourierRepository
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	errorLogSvc  ErrorLogService
	log          *logrus.Logger
}

func NewCourierService(
	courierRepo repository.CourierRepository,
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	errorLogSvc ErrorLogService,
	log *logrus.Logger,
) CourierService {
	return &courierServiceImpl{
		courierRepo:  courierRepo,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		errorLogSvc:  errorLogSvc,
		log:          log,
	}
}

func (s *courierServiceImpl) Create(ctx context.Context, req dto.CreateCourierRequest) (*model.Courier, error) {
	courier := &model.Courier{
		Name:          req.Name,
		APIEndpoint:   req.APIEndpoint,
		ContactNumber: req.ContactNumber,
		Status:        model.CourierStatus(req.Status),
	}
	if err := s.courierRepo.Create(ctx, courier); err != nil {
		return nil, err
	}
	return courier, nil
}

func (s *courierServiceImpl) List(ctx context.Context, q dto.ListQuery) ([]*model.Courier, int64, error) {
	return s.courierRepo.List(ctx, repository.ListOptions{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

func (s *courierServiceImpl) Update(ctx context.Context, courierID string, req dto.CreateCourierRequest) (*model.Courier, error) {
	err := s.courierRepo.Update(ctx, courierID, map[string]interface{}{
		"name":           req.Name,
		"api_endpoint":   req.APIEndpoint,
		"contact_number": req.ContactNumber,
		"status":         req.Status,
	})
	if err != nil {
		return nil, err
	}
	return s.courierRepo.FindByID(ctx, courierID)
}

func (s *courierServiceImpl) Delete(ctx context.Context, courierID string) error {
	return s.courierRepo.Delete(ctx, courierID)
}

func (s *courierServiceImpl) AssignToOrder(ctx context.Context, orderID, courierID string) (*model.OrderDelivery, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderDispatched {
		return nil, apperr.New(apperr.KindValidation, "order %s must be dispatched before courier assignment, is %s", orderID, order.Status)
	}

	courier, err := s.courierRepo.FindByID(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if courier.Status != model.CourierActive {
		return nil, apperr.New(apperr.KindValidation, "courier %s is inactive", courierID)
	}

	delivery := &model.OrderDelivery{
		OrderID:        orderID,
		CourierID:      courierID,
		TrackingNumber: newTrackingNumber(),
		Status:         model.DeliveryAssigned,
		AssignedAt:     time.Now(),
	}
	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   orderID,
		"courier_id": courierID,
		"tracking":   delivery.TrackingNumber,
	}).Info("courier assigned to order")
	return delivery, nil
}

func (s *courierServiceImpl) GetDelivery(ctx context.Context, orderID string) (*model.OrderDelivery, error) {
	return s.deliveryRepo.FindByOrderID(ctx, orderID)
}

func (s *courierServiceImpl) UpdateDeliveryStatus(ctx context.Context, orderID string, status model.DeliveryStatus) (*model.OrderDelivery, error) {
	delivery, err := s.deliveryRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.UpdateStatus(ctx, delivery.DeliveryID, status); err != nil {
		return nil, err
	}
	if status == model.DeliveryFailed {
		s.errorLogSvc.Report(ctx, &orderID, model.ErrorCourier,
			"delivery "+delivery.TrackingNumber+" failed")
	}
	return s.deliveryRepo.FindByOrderID(ctx, orderID)
}

func newTrackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
