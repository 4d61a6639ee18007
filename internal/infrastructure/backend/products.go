package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

type productRepository struct {
	c *Client
}

// NewProductRepository creates the product repository backed by /products
func NewProductRepository(c *Client) domainRepo.ProductRepository {
	return &productRepository{c: c}
}

type productList struct {
	Products   []entity.Product       `json:"products" validate:"dive"`
	Pagination *pagination.Pagination `json:"pagination"`
}

type productData struct {
	Product entity.Product `json:"product"`
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, *pagination.Pagination, error) {
	if params == nil {
		params = &domainRepo.ProductFilterParams{Pagination: pagination.DefaultParams()}
	}
	q := url.Values{}
	params.Pagination.Apply(q)
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.CategoryID != "" {
		q.Set("categoryId", params.CategoryID)
	}
	if params.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*params.IsActive))
	}
	if params.LowStock {
		q.Set("lowStock", "true")
	}

	var out productList
	if err := r.c.get(ctx, "/products", q, &out); err != nil {
		return nil, nil, err
	}
	return out.Products, pageOf(out.Pagination, params.Pagination, len(out.Products)), nil
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var out productList
	if err := r.c.get(ctx, "/products/low-stock", nil, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []entity.Product{}
	}
	return out.Products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out productData
	if err := r.c.get(ctx, "/products/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, code string) (*entity.Product, error) {
	var out productData
	if err := r.c.get(ctx, "/products/barcode/"+escape(code), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (r *productRepository) Create(ctx context.Context, input *entity.ProductInput) (*entity.Product, error) {
	var out productData
	if err := r.c.post(ctx, "/products", input, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, input *entity.ProductUpdate) (*entity.Product, error) {
	var out productData
	if err := r.c.put(ctx, "/products/"+escape(id), input, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, "/products/"+escape(id))
}

// pageOf normalizes the backend's pagination block, synthesizing one when it is missing
func pageOf(p *pagination.Pagination, params pagination.Params, n int) *pagination.Pagination {
	if p == nil {
		params.Validate()
		return pagination.New(params.Page, params.Limit, int64(n))
	}
	p.Normalize()
	return p
}
