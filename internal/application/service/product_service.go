package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/spreadsheet"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ProductQuery filters the products screen. Search, CategoryID and LowStock are
// applied locally to the page the backend returns.
type ProductQuery struct {
	Pagination pagination.Params
	Search     string
	CategoryID string
	LowStock   bool
	// IncludeInactive lists soft-deleted products too
	IncludeInactive bool
}

// ListProducts returns one page of products narrowed by the local filters
func (s *ProductService) ListProducts(ctx context.Context, q *ProductQuery) (*pagination.PaginatedResult[entity.Product], error) {
	params := &repository.ProductFilterParams{
		Pagination: q.Pagination,
		CategoryID: q.CategoryID,
	}
	if !q.IncludeInactive {
		active := true
		params.IsActive = &active
	}

	products, page, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(FilterProducts(products, q), page), nil
}

// FilterProducts keeps products matching the search term (name or SKU), the
// category and, when asked, only those at or below their reorder level
func FilterProducts(products []entity.Product, q *ProductQuery) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !p.Matches(q.Search) {
			continue
		}
		if q.CategoryID != "" && p.Category.ID != q.CategoryID {
			continue
		}
		if q.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// GetProductByBarcode resolves a scanned code
func (s *ProductService) GetProductByBarcode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := s.productRepo.GetByBarcode(ctx, code)
	if err != nil {
		if apperror.IsKind(err, apperror.KindRejected) && apperror.GetAppError(err).Code == 404 {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, err
	}
	return p, nil
}

// GetLowStockProducts returns products with low stock
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name         string
	Description  string
	CategoryID   string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
	ReorderLevel *int
	ImageURL     string
	Barcode      string
}

// CreateProduct creates a product; the backend assigns its SKU
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	return s.productRepo.Create(ctx, &entity.ProductInput{
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		CategoryID:   input.CategoryID,
		CostPrice:    entity.Number(input.CostPrice),
		SellingPrice: entity.Number(input.SellingPrice),
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
		ImageURL:     input.ImageURL,
		Barcode:      strings.TrimSpace(input.Barcode),
	})
}

func validateProduct(input *CreateProductInput) error {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.CategoryID == "" {
		fields = append(fields, apperror.FieldError{Field: "categoryId", Message: "Category is required"})
	}
	if input.CostPrice.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "costPrice", Message: "Cost price cannot be negative"})
	}
	if !input.SellingPrice.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "sellingPrice", Message: "Selling price must be greater than 0"})
	}
	if input.Quantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}
	if input.ReorderLevel != nil && *input.ReorderLevel < 0 {
		fields = append(fields, apperror.FieldError{Field: "reorderLevel", Message: "Reorder level cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *entity.ProductUpdate) (*entity.Product, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.Validation("Name cannot be empty")
	}
	if err := nonNegative("costPrice", input.CostPrice); err != nil {
		return nil, err
	}
	if err := nonNegative("sellingPrice", input.SellingPrice); err != nil {
		return nil, err
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, apperror.Validation("Quantity cannot be negative")
	}
	return s.productRepo.Update(ctx, id, input)
}

func nonNegative(field string, n *json.Number) error {
	if n == nil {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "Must be a number"}})
	}
	if d.IsNegative() {
		return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "Cannot be negative"}})
	}
	return nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name         string
	Description  string
	CategoryName string
	CostPrice    string
	SellingPrice string
	Quantity     int
	ReorderLevel *int
	Barcode      string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"totalRows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates rows and creates them one by one on the backend.
// Categories are matched by name or code, case-insensitively.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryMap := make(map[string]string, len(categories)*2)
	for _, c := range categories {
		categoryMap[strings.ToLower(c.Name)] = c.ID
		if c.Code != "" {
			categoryMap[strings.ToLower(c.Code)] = c.ID
		}
	}

	result := &ImportResult{TotalRows: len(rows)}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum := i + 2 // row 1 is the header

		categoryID, ok := categoryMap[strings.ToLower(strings.TrimSpace(row.CategoryName))]
		if !ok {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "category", Message: fmt.Sprintf("Unknown category %q", row.CategoryName)})
			continue
		}
		cost, err := parseAmount(row.CostPrice)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "costPrice", Message: "Cost price must be a number"})
			continue
		}
		selling, err := parseAmount(row.SellingPrice)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "sellingPrice", Message: "Selling price must be a number"})
			continue
		}

		_, err = s.CreateProduct(ctx, &CreateProductInput{
			Name:         row.Name,
			Description:  row.Description,
			CategoryID:   categoryID,
			CostPrice:    cost,
			SellingPrice: selling,
			Quantity:     row.Quantity,
			ReorderLevel: row.ReorderLevel,
			Barcode:      row.Barcode,
		})
		if err != nil {
			result.Errors = append(result.Errors, importError(rowNum, err))
			continue
		}
		result.Successful++
	}
	result.Failed = len(result.Errors)

	s.logger.Info("product import finished",
		zap.Int("rows", result.TotalRows),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// ImportProductsFile parses an .xlsx workbook and imports its rows
func (s *ProductService) ImportProductsFile(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parsed, err := spreadsheet.ReadProducts(r)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrNoRows) {
			return nil, apperror.Validation("The file has no product rows")
		}
		return nil, apperror.NewBadRequestError(strings.TrimPrefix(err.Error(), "spreadsheet: "))
	}

	rows := make([]ImportProductRow, len(parsed))
	for i, p := range parsed {
		rows[i] = ImportProductRow{
			Name:         p.Name,
			Description:  p.Description,
			CategoryName: p.Category,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
			Quantity:     p.Quantity,
			ReorderLevel: p.ReorderLevel,
			Barcode:      p.Barcode,
		}
	}
	return s.ImportProducts(ctx, rows)
}

func importError(row int, err error) ImportRowError {
	appErr := apperror.GetAppError(err)
	if len(appErr.Errors) > 0 {
		return ImportRowError{Row: row, Field: appErr.Errors[0].Field, Message: appErr.Errors[0].Message}
	}
	return ImportRowError{Row: row, Message: appErr.Message}
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
