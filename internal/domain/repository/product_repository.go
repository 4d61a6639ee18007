package repository

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

// ProductRepository defines the backend operations on products
type ProductRepository interface {
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, *pagination.Pagination, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, code string) (*entity.Product, error)
	Create(ctx context.Context, input *entity.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, input *entity.ProductUpdate) (*entity.Product, error)
	// Delete soft-deletes the product
	Delete(ctx context.Context, id string) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination pagination.Params
	Search     string
	CategoryID string
	IsActive   *bool
	LowStock   bool
}

// CategoryRepository defines the backend operations on categories
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Create(ctx context.Context, input *entity.CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id string, input *entity.CategoryInput) (*entity.Category, error)
	// Delete fails on the backend if the category still has products
	Delete(ctx context.Context, id string) error
}
