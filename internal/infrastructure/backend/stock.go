package backend

import (
	"context"
	"net/url"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

type stockRepository struct {
	c *Client
}

// NewStockRepository creates the stock repository backed by /stock
func NewStockRepository(c *Client) domainRepo.StockRepository {
	return &stockRepository{c: c}
}

type stockLogList struct {
	Logs       []entity.StockLog      `json:"logs" validate:"dive"`
	Pagination *pagination.Pagination `json:"pagination"`
}

func (r *stockRepository) Restock(ctx context.Context, req *entity.RestockRequest) (*entity.StockResult, error) {
	var out entity.StockResult
	if err := r.c.post(ctx, "/stock/restock", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *stockRepository) Adjust(ctx context.Context, req *entity.AdjustStockRequest) (*entity.StockResult, error) {
	var out entity.StockResult
	if err := r.c.post(ctx, "/stock/adjust", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *stockRepository) Logs(ctx context.Context, params *domainRepo.StockLogFilterParams) ([]entity.StockLog, *pagination.Pagination, error) {
	if params == nil {
		params = &domainRepo.StockLogFilterParams{Pagination: pagination.DefaultParams()}
	}
	q := url.Values{}
	params.Pagination.Apply(q)
	applyRange(q, params.Range)
	if params.ProductID != "" {
		q.Set("productId", params.ProductID)
	}
	if params.Type != "" {
		q.Set("type", params.Type)
	}

	var out stockLogList
	if err := r.c.get(ctx, "/stock/logs", q, &out); err != nil {
		return nil, nil, err
	}
	if out.Logs == nil {
		out.Logs = []entity.StockLog{}
	}
	return out.Logs, pageOf(out.Pagination, params.Pagination, len(out.Logs)), nil
}

func (r *stockRepository) ProductHistory(ctx context.Context, productID string) ([]entity.StockLog, error) {
	var out stockLogList
	if err := r.c.get(ctx, "/stock/logs/"+escape(productID), nil, &out); err != nil {
		return nil, err
	}
	if out.Logs == nil {
		out.Logs = []entity.StockLog{}
	}
	return out.Logs, nil
}
