package service

import (
	"context"
	"strings"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DefaultStockLogLimit is the page size of the stock log screen
const DefaultStockLogLimit = 50

// StockService handles restocks, adjustments and the stock log
type StockService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewStockService creates a new stock service
func NewStockService(stockRepo repository.StockRepository, productRepo repository.ProductRepository) *StockService {
	return &StockService{stockRepo: stockRepo, productRepo: productRepo}
}

// StockLogQuery filters the stock log
type StockLogQuery struct {
	Pagination pagination.Params
	ProductID  string
	StartDate  string
	EndDate    string
	Type       string
}

// ListLogs returns one page of stock movements, 50 per page unless asked otherwise
func (s *StockService) ListLogs(ctx context.Context, q *StockLogQuery) (*pagination.PaginatedResult[entity.StockLog], error) {
	if q.Type != "" && !enum.StockMovementType(q.Type).IsValid() {
		return nil, apperror.Validation("Invalid movement type")
	}
	rng, err := ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	params := q.Pagination
	if params.Limit <= 0 {
		params.Limit = DefaultStockLogLimit
	}

	logs, page, err := s.stockRepo.Logs(ctx, &repository.StockLogFilterParams{
		Pagination: params,
		ProductID:  q.ProductID,
		Range:      rng,
		Type:       q.Type,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(logs, page), nil
}

// ProductHistory lists every movement of one product
func (s *StockService) ProductHistory(ctx context.Context, productID string) ([]entity.StockLog, error) {
	return s.stockRepo.ProductHistory(ctx, productID)
}

// RestockInput represents the restock input
type RestockInput struct {
	ProductID string
	Quantity  int
	CostPrice *decimal.Decimal
	Notes     string
}

// RestockOutcome is the backend result plus the quantity the restock was expected to reach
type RestockOutcome struct {
	*entity.StockResult
	PreviousQuantity  int `json:"previousQuantity"`
	ProjectedQuantity int `json:"projectedQuantity"`
}

// Restock adds units to a product
func (s *StockService) Restock(ctx context.Context, input *RestockInput) (*RestockOutcome, error) {
	if input.Quantity <= 0 {
		return nil, apperror.Validation("Quantity must be greater than 0")
	}
	if input.CostPrice != nil && input.CostPrice.IsNegative() {
		return nil, apperror.Validation("Cost price cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	req := &entity.RestockRequest{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Notes:     strings.TrimSpace(input.Notes),
	}
	if input.CostPrice != nil {
		req.CostPrice = entity.Number(*input.CostPrice)
	}

	result, err := s.stockRepo.Restock(ctx, req)
	if err != nil {
		return nil, err
	}
	return &RestockOutcome{
		StockResult:       result,
		PreviousQuantity:  product.Quantity,
		ProjectedQuantity: product.Quantity + input.Quantity,
	}, nil
}

// AdjustInput represents a manual stock adjustment
type AdjustInput struct {
	ProductID string
	Quantity  int
	Type      enum.StockMovementType
	Reason    string
	Notes     string
}

// Adjust records a manual stock movement
func (s *StockService) Adjust(ctx context.Context, input *AdjustInput) (*entity.StockResult, error) {
	var fields []apperror.FieldError
	if input.ProductID == "" {
		fields = append(fields, apperror.FieldError{Field: "productId", Message: "Product is required"})
	}
	if !input.Type.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "type", Message: "Type must be IN, OUT or ADJUSTMENT"})
	}
	if input.Quantity == 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "Quantity cannot be zero"})
	}
	if strings.TrimSpace(input.Reason) == "" {
		fields = append(fields, apperror.FieldError{Field: "reason", Message: "Reason is required"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	return s.stockRepo.Adjust(ctx, &entity.AdjustStockRequest{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Type:      input.Type,
		Reason:    strings.TrimSpace(input.Reason),
		Notes:     strings.TrimSpace(input.Notes),
	})
}
