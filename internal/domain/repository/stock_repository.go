package repository

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

// StockRepository defines the backend operations on stock movements
type StockRepository interface {
	Restock(ctx context.Context, req *entity.RestockRequest) (*entity.StockResult, error)
	Adjust(ctx context.Context, req *entity.AdjustStockRequest) (*entity.StockResult, error)
	Logs(ctx context.Context, params *StockLogFilterParams) ([]entity.StockLog, *pagination.Pagination, error)
	ProductHistory(ctx context.Context, productID string) ([]entity.StockLog, error)
}

// StockLogFilterParams contains filtering parameters for stock log queries
type StockLogFilterParams struct {
	Pagination pagination.Params
	ProductID  string
	Range      DateRange
	Type       string
}
