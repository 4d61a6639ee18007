package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token       string
	invalidated atomic.Int32
}

func (f *fakeTokens) AccessToken() string { return f.token }
func (f *fakeTokens) Invalidate()         { f.invalidated.Add(1) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const productJSON = `{"id":"p1","sku":"ELE-001","name":"Widget","costPrice":"650","sellingPrice":"1000","quantity":5,"reorderLevel":2,"isActive":true,"category":{"id":"c1","name":"Electronics","code":"ELE"}}`

func TestBearerHeaderFromContext(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"product":`+productJSON+`}}`)
	})

	ctx := WithTokens(context.Background(), &fakeTokens{token: "abc"})
	p, err := NewProductRepository(c).GetByID(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 5, p.Quantity)
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"Token expired"}`)
	})
	ts := &fakeTokens{token: "stale"}

	_, err := NewDashboardRepository(c).Stats(WithTokens(context.Background(), ts))

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	assert.Equal(t, int32(1), ts.invalidated.Load())
}

func TestUnauthorizedWithoutSessionIsRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`)
	})

	_, err := NewAuthRepository(c).Login(context.Background(), entity.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindRejected))
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestRejectionMessageVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"message":"Insufficient stock for Widget","errors":[{"field":"items","message":"too many"}]}`)
	})

	_, err := NewSaleRepository(c).Create(context.Background(), &entity.CreateSaleRequest{
		Items:         []entity.SaleLine{{ProductID: "p1", Quantity: 9}},
		Discount:      "0",
		DiscountType:  enum.DiscountTypeAmount,
		PaymentMethod: enum.PaymentMethodCash,
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindRejected, appErr.Kind)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Insufficient stock for Widget", appErr.Message)
	assert.Len(t, appErr.Errors, 1)
}

func TestSuccessFalseIsRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false,"message":"Category code taken"}`)
	})

	_, err := NewCategoryRepository(c).Create(context.Background(), &entity.CategoryInput{Name: "Phones"})

	assert.True(t, apperror.IsKind(err, apperror.KindRejected))
	assert.Equal(t, "Category code taken", err.Error())
}

func TestMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>oops</html>`,
		"missing data":   `{"success":true}`,
		"wrong shape":    `{"success":true,"data":{"products":"nope"}}`,
		"negative qty":   `{"success":true,"data":{"products":[{"id":"p1","name":"A","quantity":-1}]}}`,
		"missing id":     `{"success":true,"data":{"products":[{"name":"A","quantity":1}]}}`,
		"bad pagination": `{"success":true,"data":{"products":[],"pagination":{"total":"x"}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})
			_, _, err := NewProductRepository(c).List(context.Background(), nil)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindMalformedResponse), err.Error())
		})
	}
}

func TestMalformedEnumInSale(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"sale":{"id":"s1","invoiceNumber":"INV-1","paymentMethod":"CHEQUE","items":[]}}}`)
	})

	_, err := NewSaleRepository(c).GetByID(context.Background(), "s1")

	assert.True(t, apperror.IsKind(err, apperror.KindMalformedResponse))
}

func TestSalePayloadCarriesNoPrices(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		assert.NoError(t, dec.Decode(&body))
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"sale":{"id":"s1","invoiceNumber":"INV-20240101-0001","items":[{"product":{"name":"Widget","sku":"ELE-001"},"quantity":3,"unitPrice":"1000","subtotal":"3000"}],"subtotal":"3000","discount":"300","discountType":"PERCENTAGE","total":"2700","paymentMethod":"CASH","cashier":{"name":"Ada"}}}}`)
	})

	sale, err := NewSaleRepository(c).Create(context.Background(), &entity.CreateSaleRequest{
		Items:         []entity.SaleLine{{ProductID: "p1", Quantity: 3}},
		Discount:      "300",
		DiscountType:  enum.DiscountTypePercentage,
		PaymentMethod: enum.PaymentMethodCash,
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-20240101-0001", sale.InvoiceNumber)
	assert.Equal(t, "2700", sale.Total.String())

	items := body["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.ElementsMatch(t, []string{"productId", "quantity"}, keys(line))
	assert.NotContains(t, body, "total")
	assert.NotContains(t, body, "subtotal")
	assert.Equal(t, json.Number("300"), body["discount"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestProductListQueryAndPagination(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"products":[`+productJSON+`],"pagination":{"total":41,"page":2,"limit":20}}}`)
	})
	active := true

	products, page, err := NewProductRepository(c).List(context.Background(), &domainRepo.ProductFilterParams{
		Pagination: pagination.Params{Page: 2, Limit: 20},
		Search:     "wid",
		IsActive:   &active,
	})

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "isActive=true&limit=20&page=2&search=wid", query)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestStockHistoryPath(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"logs":[{"id":"l1","type":"IN","quantity":5,"previousQty":0,"newQty":5,"reason":"Restock","product":{"name":"Widget","sku":"ELE-001"},"user":{"name":"Ada"}}]}}`)
	})

	logs, err := NewStockRepository(c).ProductHistory(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "/stock/logs/p1", path)
	require.Len(t, logs, 1)
	assert.Equal(t, enum.StockMovementIn, logs[0].Type)
}

func TestDeleteWithoutData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(w, http.StatusOK, `{"success":true,"message":"Category deleted"}`)
	})

	assert.NoError(t, NewCategoryRepository(c).Delete(context.Background(), "c1"))
}

func TestUnreachableBackend(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)

	_, err := NewDashboardRepository(c).Stats(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}
