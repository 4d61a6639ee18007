package service

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/backend"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

type fakeAuth struct {
	mu          sync.Mutex
	result      *entity.AuthResult
	me          *entity.User
	meErr       error
	logoutErr   error
	logouts     int
	logoutAlls  int
	lastRefresh string
}

func (f *fakeAuth) Login(_ context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	if creds.Password != "secret" {
		return nil, apperror.NewRejectedError(401, "Invalid credentials", nil)
	}
	return f.result, nil
}

func (f *fakeAuth) Register(_ context.Context, reg entity.Registration) (*entity.AuthResult, error) {
	r := *f.result
	r.User.Email = reg.Email
	r.User.Role = reg.Role
	return &r, nil
}

func (f *fakeAuth) Me(ctx context.Context) (*entity.User, error) {
	if f.meErr != nil {
		if apperror.IsKind(f.meErr, apperror.KindUnauthorized) {
			if ts := backend.TokensFrom(ctx); ts != nil {
				ts.Invalidate()
			}
		}
		return nil, f.meErr
	}
	return f.me, nil
}

func (f *fakeAuth) Refresh(_ context.Context, refreshToken string) (*entity.AuthResult, error) {
	f.mu.Lock()
	f.lastRefresh = refreshToken
	f.mu.Unlock()
	return &entity.AuthResult{Token: "new-access", RefreshToken: "new-refresh"}, nil
}

func (f *fakeAuth) Logout(context.Context, string) error {
	f.mu.Lock()
	f.logouts++
	f.mu.Unlock()
	return f.logoutErr
}

func (f *fakeAuth) LogoutAll(context.Context) error {
	f.mu.Lock()
	f.logoutAlls++
	f.mu.Unlock()
	return nil
}

type memSessions struct {
	mu   sync.Mutex
	recs map[string]entity.SessionRecord
}

func newMemSessions() *memSessions {
	return &memSessions{recs: make(map[string]entity.SessionRecord)}
}

func (m *memSessions) Save(_ context.Context, rec *entity.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = *rec
	return nil
}

func (m *memSessions) Get(_ context.Context, id string) (*entity.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &rec, nil
}

func (m *memSessions) Touch(_ context.Context, id string, lastSeen, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[id]; ok {
		rec.LastSeenAt = lastSeen
		rec.ExpiresAt = expiresAt
		m.recs[id] = rec
	}
	return nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}

func (m *memSessions) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.recs {
		if rec.UserID == userID {
			delete(m.recs, id)
		}
	}
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rec := range m.recs {
		if rec.IsExpired(now) {
			delete(m.recs, id)
			n++
		}
	}
	return n, nil
}

func (m *memSessions) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.recs[id]
	return ok
}

type fakeProducts struct {
	mu       sync.Mutex
	products []entity.Product
	listErr  error
	created  []*entity.ProductInput
	lastList *repository.ProductFilterParams
	block    chan struct{}
}

func (f *fakeProducts) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, *pagination.Pagination, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = params
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, pagination.New(1, 20, int64(len(out))), nil
}

func (f *fakeProducts) GetLowStock(context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, apperror.NewRejectedError(404, "Product not found", nil)
}

func (f *fakeProducts) GetByBarcode(_ context.Context, code string) (*entity.Product, error) {
	for i := range f.products {
		if f.products[i].Barcode == code {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, apperror.NewRejectedError(404, "No product with that barcode", nil)
}

func (f *fakeProducts) Create(_ context.Context, input *entity.ProductInput) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	return &entity.Product{ID: "new", Name: input.Name}, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, _ *entity.ProductUpdate) (*entity.Product, error) {
	return &entity.Product{ID: id}, nil
}

func (f *fakeProducts) Delete(context.Context, string) error { return nil }

func (f *fakeProducts) setQuantity(id string, q int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Quantity = q
		}
	}
}

type fakeCategories struct {
	categories []entity.Category
	deletes    []string
}

func (f *fakeCategories) List(context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, apperror.NewRejectedError(404, "Category not found", nil)
}

func (f *fakeCategories) Create(_ context.Context, input *entity.CategoryInput) (*entity.Category, error) {
	c := entity.Category{ID: "c-new", Name: input.Name, Code: input.Code}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeCategories) Update(_ context.Context, id string, input *entity.CategoryInput) (*entity.Category, error) {
	return &entity.Category{ID: id, Name: input.Name, Code: input.Code}, nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeSales struct {
	mu       sync.Mutex
	created  []*entity.CreateSaleRequest
	createFn func(*entity.CreateSaleRequest) (*entity.Sale, error)
	pages    [][]entity.Sale
	sales    map[string]*entity.Sale
	summary  *entity.SalesSummary
	lastList []repository.SaleFilterParams
	voided   []string
}

func (f *fakeSales) Create(_ context.Context, req *entity.CreateSaleRequest) (*entity.Sale, error) {
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	return f.createFn(req)
}

func (f *fakeSales) List(_ context.Context, params *repository.SaleFilterParams) ([]entity.Sale, *pagination.Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = append(f.lastList, *params)
	page := params.Pagination.Page
	if page < 1 {
		page = 1
	}
	if page > len(f.pages) {
		return []entity.Sale{}, pagination.New(page, 20, 0), nil
	}
	p := &pagination.Pagination{Page: page, Limit: params.Pagination.Limit, TotalPages: len(f.pages)}
	p.Normalize()
	return f.pages[page-1], p, nil
}

func (f *fakeSales) Summary(context.Context, repository.DateRange) (*entity.SalesSummary, error) {
	if f.summary == nil {
		return &entity.SalesSummary{}, nil
	}
	return f.summary, nil
}

func (f *fakeSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if s, ok := f.sales[id]; ok {
		return s, nil
	}
	return nil, apperror.NewRejectedError(404, "Sale not found", nil)
}

func (f *fakeSales) Void(_ context.Context, id, reason string) (*entity.Sale, error) {
	f.voided = append(f.voided, id)
	if s, ok := f.sales[id]; ok {
		v := *s
		v.IsVoided = true
		v.VoidReason = reason
		f.sales[id] = &v
	}
	return nil, nil
}

type fakeStock struct {
	lastLogs    *repository.StockLogFilterParams
	lastRestock *entity.RestockRequest
	lastAdjust  *entity.AdjustStockRequest
}

func (f *fakeStock) Restock(_ context.Context, req *entity.RestockRequest) (*entity.StockResult, error) {
	f.lastRestock = req
	return &entity.StockResult{Log: &entity.StockLog{ID: "l1", Quantity: req.Quantity}}, nil
}

func (f *fakeStock) Adjust(_ context.Context, req *entity.AdjustStockRequest) (*entity.StockResult, error) {
	f.lastAdjust = req
	return &entity.StockResult{}, nil
}

func (f *fakeStock) Logs(_ context.Context, params *repository.StockLogFilterParams) ([]entity.StockLog, *pagination.Pagination, error) {
	f.lastLogs = params
	return nil, pagination.New(1, params.Pagination.Limit, 0), nil
}

func (f *fakeStock) ProductHistory(context.Context, string) ([]entity.StockLog, error) {
	return []entity.StockLog{}, nil
}
