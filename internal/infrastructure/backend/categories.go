package backend

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
)

type categoryRepository struct {
	c *Client
}

// NewCategoryRepository creates the category repository backed by /categories
func NewCategoryRepository(c *Client) domainRepo.CategoryRepository {
	return &categoryRepository{c: c}
}

type categoryList struct {
	Categories []entity.Category `json:"categories" validate:"dive"`
}

type categoryData struct {
	Category entity.Category `json:"category"`
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var out categoryList
	if err := r.c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	if out.Categories == nil {
		out.Categories = []entity.Category{}
	}
	return out.Categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out categoryData
	if err := r.c.get(ctx, "/categories/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (r *categoryRepository) Create(ctx context.Context, input *entity.CategoryInput) (*entity.Category, error) {
	var out categoryData
	if err := r.c.post(ctx, "/categories", input, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, input *entity.CategoryInput) (*entity.Category, error) {
	var out categoryData
	if err := r.c.put(ctx, "/categories/"+escape(id), input, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, "/categories/"+escape(id))
}
