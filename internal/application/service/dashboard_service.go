package service

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetStats returns today's figures, inventory health, recent sales and top products
func (s *DashboardService) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := s.dashboardRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.RecentSales == nil {
		stats.RecentSales = []entity.RecentSale{}
	}
	if stats.TopProducts == nil {
		stats.TopProducts = []entity.TopProduct{}
	}
	if stats.Inventory.LowStockProducts == nil {
		stats.Inventory.LowStockProducts = []entity.LowStockProduct{}
	}
	return stats, nil
}
