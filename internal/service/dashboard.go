package service

import (
	"context"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

const recentOrderLimit = 5

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

type dashboardServiceImpl struct {
	statsRepo repository.StatsRepository
}

func NewDashboardService(statsRepo repository.StatsRepository) DashboardService {
	return &dashboardServiceImpl{statsRepo: statsRepo}
}

func (s *dashboardServiceImpl) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	totalOrders, err := s.statsRepo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.statsRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.statsRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.statsRepo.PaidRevenue(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.statsRepo.CountOrdersByStatus(ctx, model.OrderPending)
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepo.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalOrders:    totalOrders,
		TotalCustomers: totalCustomers,
		TotalProducts:  totalProducts,
		TotalRevenue:   revenue,
		PendingOrders:  pending,
		RecentOrders:   recent,
	}, nil
}
