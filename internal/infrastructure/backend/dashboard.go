package backend

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
)

type dashboardRepository struct {
	c *Client
}

// NewDashboardRepository creates the repository for /dashboard/stats
func NewDashboardRepository(c *Client) domainRepo.DashboardRepository {
	return &dashboardRepository{c: c}
}

func (r *dashboardRepository) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	var out entity.DashboardStats
	if err := r.c.get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
