package backend

import (
	"context"
	"net/url"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

type saleRepository struct {
	c *Client
}

// NewSaleRepository creates the sale repository backed by /sales
func NewSaleRepository(c *Client) domainRepo.SaleRepository {
	return &saleRepository{c: c}
}

type saleList struct {
	Sales      []entity.Sale          `json:"sales" validate:"dive"`
	Pagination *pagination.Pagination `json:"pagination"`
}

type saleData struct {
	Sale entity.Sale `json:"sale"`
}

type voidData struct {
	Sale *entity.Sale `json:"sale"`
}

func (r *saleRepository) Create(ctx context.Context, req *entity.CreateSaleRequest) (*entity.Sale, error) {
	var out saleData
	if err := r.c.post(ctx, "/sales", req, &out); err != nil {
		return nil, err
	}
	return &out.Sale, nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, *pagination.Pagination, error) {
	if params == nil {
		params = &domainRepo.SaleFilterParams{Pagination: pagination.DefaultParams()}
	}
	q := url.Values{}
	params.Pagination.Apply(q)
	applyRange(q, params.Range)
	if params.PaymentMethod != "" {
		q.Set("paymentMethod", params.PaymentMethod)
	}
	if params.CashierID != "" {
		q.Set("cashierId", params.CashierID)
	}

	var out saleList
	if err := r.c.get(ctx, "/sales", q, &out); err != nil {
		return nil, nil, err
	}
	if out.Sales == nil {
		out.Sales = []entity.Sale{}
	}
	return out.Sales, pageOf(out.Pagination, params.Pagination, len(out.Sales)), nil
}

func (r *saleRepository) Summary(ctx context.Context, rng domainRepo.DateRange) (*entity.SalesSummary, error) {
	q := url.Values{}
	applyRange(q, rng)

	var out entity.SalesSummary
	if err := r.c.get(ctx, "/sales/summary", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out saleData
	if err := r.c.get(ctx, "/sales/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Sale, nil
}

// Void returns the voided sale when the backend echoes it, nil otherwise
func (r *saleRepository) Void(ctx context.Context, id, reason string) (*entity.Sale, error) {
	var out voidData
	err := r.c.post(ctx, "/sales/"+escape(id)+"/void", entity.VoidSaleRequest{Reason: reason}, &out)
	if err != nil {
		return nil, err
	}
	return out.Sale, nil
}

func applyRange(q url.Values, rng domainRepo.DateRange) {
	if rng.StartDate != "" {
		q.Set("startDate", rng.StartDate)
	}
	if rng.EndDate != "" {
		q.Set("endDate", rng.EndDate)
	}
}
