package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput represents the create/update category input
type CategoryInput struct {
	Name string
	Code string
}

// ListCategories fetches categories with their product counts and caches them in the workspace
func (s *CategoryService) ListCategories(ctx context.Context, sess *Session) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws := sess.Workspace()
	ws.mu.Lock()
	ws.categories = categories
	ws.mu.Unlock()
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// CreateCategory creates a category. The code is uppercased; the backend derives one when empty.
func (s *CategoryService) CreateCategory(ctx context.Context, sess *Session, input *CategoryInput) (*entity.Category, error) {
	body, err := categoryBody(input, true)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.Create(ctx, body)
	if err != nil {
		return nil, err
	}

	ws := sess.Workspace()
	ws.mu.Lock()
	ws.categories = append(ws.categories, *category)
	ws.mu.Unlock()
	return category, nil
}

// UpdateCategory updates a category's name and code
func (s *CategoryService) UpdateCategory(ctx context.Context, sess *Session, id string, input *CategoryInput) (*entity.Category, error) {
	body, err := categoryBody(input, false)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.Update(ctx, id, body)
	if err != nil {
		return nil, err
	}

	ws := sess.Workspace()
	ws.mu.Lock()
	for i := range ws.categories {
		if ws.categories[i].ID == id {
			ws.categories[i] = *category
		}
	}
	ws.mu.Unlock()
	return category, nil
}

// DeleteCategory deletes a category. A category the cached snapshot shows with
// products is refused without calling the backend.
func (s *CategoryService) DeleteCategory(ctx context.Context, sess *Session, id string) error {
	ws := sess.Workspace()

	ws.mu.Lock()
	cached, ok := ws.category(id)
	ws.mu.Unlock()
	if ok && cached.ProductCount() > 0 {
		return apperror.NewConflictError(fmt.Sprintf("Cannot delete \"%s\" - it has %d products", cached.Name, cached.ProductCount()))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	ws.mu.Lock()
	kept := ws.categories[:0]
	for _, c := range ws.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	ws.categories = kept
	ws.mu.Unlock()
	return nil
}

func categoryBody(input *CategoryInput, requireName bool) (*entity.CategoryInput, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	if requireName && name == "" {
		return nil, apperror.Validation("Category name is required")
	}
	if code != "" && (len(code) < 2 || len(code) > 10) {
		return nil, apperror.Validation("Category code must be 2-10 characters")
	}
	return &entity.CategoryInput{Name: name, Code: code}, nil
}
