package repository

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

// SaleRepository defines the backend operations on sales
type SaleRepository interface {
	// Create submits a cart; the backend prices it, decrements stock and assigns the invoice number
	Create(ctx context.Context, req *entity.CreateSaleRequest) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, *pagination.Pagination, error)
	Summary(ctx context.Context, rng DateRange) (*entity.SalesSummary, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Void(ctx context.Context, id, reason string) (*entity.Sale, error)
}

// DateRange bounds a query by ISO dates (YYYY-MM-DD); empty ends are open
type DateRange struct {
	StartDate string
	EndDate   string
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    pagination.Params
	Range         DateRange
	PaymentMethod string
	CashierID     string
}
