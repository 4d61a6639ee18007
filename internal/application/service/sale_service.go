package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/spreadsheet"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"go.uber.org/zap"
)

// maxExportPages bounds how many backend pages one export walks
const maxExportPages = 50

// SaleService handles the sales history screen
type SaleService struct {
	saleRepo repository.SaleRepository
	location *time.Location
	logger   *zap.Logger
}

// NewSaleService creates a new sale service. loc is the timezone of exported dates.
func NewSaleService(saleRepo repository.SaleRepository, loc *time.Location, logger *zap.Logger) *SaleService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{saleRepo: saleRepo, location: loc, logger: logger}
}

// SaleQuery filters the sales screen. Search is applied locally to invoice
// number and customer name.
type SaleQuery struct {
	Pagination    pagination.Params
	StartDate     string
	EndDate       string
	PaymentMethod string
	CashierID     string
	Search        string
}

func (q *SaleQuery) dateRange() (repository.DateRange, error) {
	return ParseDateRange(q.StartDate, q.EndDate)
}

// ParseDateRange validates ISO dates (YYYY-MM-DD); either end may be empty
func ParseDateRange(start, end string) (repository.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	var from, to time.Time
	var err error
	if start != "" {
		if from, err = time.Parse(time.DateOnly, start); err != nil {
			return repository.DateRange{}, apperror.Validation("Start date must be YYYY-MM-DD")
		}
	}
	if end != "" {
		if to, err = time.Parse(time.DateOnly, end); err != nil {
			return repository.DateRange{}, apperror.Validation("End date must be YYYY-MM-DD")
		}
	}
	if start != "" && end != "" && to.Before(from) {
		return repository.DateRange{}, apperror.Validation("End date cannot be before start date")
	}
	return repository.DateRange{StartDate: start, EndDate: end}, nil
}

// ListSales returns one page of sales narrowed by the local search
func (s *SaleService) ListSales(ctx context.Context, q *SaleQuery) (*pagination.PaginatedResult[entity.Sale], error) {
	params, err := s.filterParams(q)
	if err != nil {
		return nil, err
	}
	sales, page, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(FilterSales(sales, q.Search), page), nil
}

func (s *SaleService) filterParams(q *SaleQuery) (*repository.SaleFilterParams, error) {
	rng, err := q.dateRange()
	if err != nil {
		return nil, err
	}
	if q.PaymentMethod != "" && !enum.PaymentMethod(q.PaymentMethod).IsValid() {
		return nil, apperror.Validation("Invalid payment method")
	}
	return &repository.SaleFilterParams{
		Pagination:    q.Pagination,
		Range:         rng,
		PaymentMethod: q.PaymentMethod,
		CashierID:     q.CashierID,
	}, nil
}

// FilterSales keeps sales whose invoice number or customer name contains term
func FilterSales(sales []entity.Sale, term string) []entity.Sale {
	out := make([]entity.Sale, 0, len(sales))
	for i := range sales {
		if sales[i].Matches(term) {
			out = append(out, sales[i])
		}
	}
	return out
}

// GetSummary aggregates sales over a date range
func (s *SaleService) GetSummary(ctx context.Context, start, end string) (*entity.SalesSummary, error) {
	rng, err := ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.saleRepo.Summary(ctx, rng)
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// VoidSale voids a sale with a reason. A voided last sale is updated in the workspace.
func (s *SaleService) VoidSale(ctx context.Context, sess *Session, id, reason string) (*entity.Sale, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("Void reason is required")
	}

	sale, err := s.saleRepo.Void(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		if sale, err = s.saleRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	ws := sess.Workspace()
	ws.mu.Lock()
	if ws.lastSale != nil && ws.lastSale.ID == id {
		ws.lastSale = sale
	}
	ws.mu.Unlock()

	s.logger.Info("sale voided", zap.String("invoice", sale.InvoiceNumber), zap.String("by", sess.User().ID))
	return sale, nil
}

// ExportSales writes every sale matching q, plus the range summary, as an .xlsx
// workbook to w and returns the file name
func (s *SaleService) ExportSales(ctx context.Context, w io.Writer, q *SaleQuery) (string, error) {
	params, err := s.filterParams(q)
	if err != nil {
		return "", err
	}
	params.Pagination = pagination.Params{Page: 1, Limit: pagination.MaxLimit}

	var all []entity.Sale
	for i := 0; i < maxExportPages; i++ {
		sales, page, err := s.saleRepo.List(ctx, params)
		if err != nil {
			return "", err
		}
		all = append(all, sales...)
		if page == nil || !page.HasNext {
			break
		}
		params.Pagination.Page++
	}
	all = FilterSales(all, q.Search)

	summary, err := s.saleRepo.Summary(ctx, params.Range)
	if err != nil {
		s.logger.Warn("sales summary for export failed", zap.Error(err))
		summary = nil
	}

	if err := spreadsheet.WriteSales(w, all, summary, s.location); err != nil {
		return "", apperror.NewInternalError("Failed to build sales export", err)
	}
	return spreadsheet.SalesFileName(params.Range.StartDate, params.Range.EndDate), nil
}
