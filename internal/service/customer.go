package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, customerID string) (*model.Customer, error)
	// List returns customers with their order count and total spent, the
	// aggregates coming from a single grouped query rather than per-customer
	// round trips.
	List(ctx context.Context, q dto.ListQuery) ([]*dto.CustomerSummary, int64, error)
	AddAddress(ctx context.Context, customerID string, req dto.CreateAddressRequest) (*model.Address, error)
}

type customerServiceImpl struct {
	repo repository.CustomerRepository
	log  *logrus.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *logrus.Logger) CustomerService {
	return &customerServiceImpl{repo: repo, log: log}
}

func (s *customerServiceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"customer_id": customer.CustomerID}).Info("customer created")
	return customer, nil
}

func (s *customerServiceImpl) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	return s.repo.FindByID(ctx, customerID)
}

func (s *customerServiceImpl) List(ctx context.Context, q dto.ListQuery) ([]*dto.CustomerSummary, int64, error) {
	customers, total, err := s.repo.List(ctx, repository.ListOptions{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(customers))
	for i, c := range customers {
		ids[i] = c.CustomerID
	}
	stats, err := s.repo.StatsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*dto.CustomerSummary, len(customers))
	for i, c := range customers {
		summary := &dto.CustomerSummary{Customer: *c, TotalSpent: decimal.Zero}
		if st, ok := stats[c.CustomerID]; ok {
			summary.OrderCount = st.OrderCount
			summary.TotalSpent = st.TotalSpent
		}
		summaries[i] = summary
	}
	return summaries, total, nil
}

func (s *customerServiceImpl) AddAddress(ctx context.Context, customerID string, req dto.CreateAddressRequest) (*model.Address, error) {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	address := &model.Address{
		CustomerID:  customerID,
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}
