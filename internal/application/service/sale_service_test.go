package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saleFixture(id, invoice, customer string) entity.Sale {
	return entity.Sale{
		ID:            id,
		InvoiceNumber: invoice,
		CustomerName:  customer,
		Subtotal:      decimal.NewFromInt(1000),
		Total:         decimal.NewFromInt(1000),
		PaymentMethod: enum.PaymentMethodCash,
		Cashier:       entity.UserRef{Name: "Ada"},
		CreatedAt:     time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"open", "", "", false},
		{"start only", "2024-01-01", "", false},
		{"same day", "2024-01-01", "2024-01-01", false},
		{"bad start", "01/01/2024", "", true},
		{"bad end", "", "2024-13-01", true},
		{"end before start", "2024-01-02", "2024-01-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ParseDateRange(tt.start, tt.end)
			if tt.wantErr {
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, repository.DateRange{StartDate: tt.start, EndDate: tt.end}, rng)
		})
	}
}

func TestListSalesFiltersLocally(t *testing.T) {
	repo := &fakeSales{pages: [][]entity.Sale{{
		saleFixture("s1", "INV-20240102-0001", "Ada Obi"),
		saleFixture("s2", "INV-20240102-0002", "Bola"),
	}}}
	svc := NewSaleService(repo, time.UTC, nil)

	res, err := svc.ListSales(context.Background(), &SaleQuery{
		Pagination:    pagination.Params{Page: 1, Limit: 20},
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-31",
		PaymentMethod: "CASH",
		Search:        "ada",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "s1", res.Items[0].ID)

	require.Len(t, repo.lastList, 1)
	assert.Equal(t, repository.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}, repo.lastList[0].Range)
	assert.Equal(t, "CASH", repo.lastList[0].PaymentMethod)

	_, err = svc.ListSales(context.Background(), &SaleQuery{PaymentMethod: "CHEQUE"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestVoidSale(t *testing.T) {
	original := saleFixture("s1", "INV-20240102-0001", "")
	repo := &fakeSales{sales: map[string]*entity.Sale{"s1": &original}}
	svc := NewSaleService(repo, time.UTC, nil)
	sess := testSession(nil)
	sess.Workspace().lastSale = &original

	_, err := svc.VoidSale(context.Background(), sess, "s1", "  ")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, repo.voided)

	voided, err := svc.VoidSale(context.Background(), sess, "s1", "Customer returned item")
	require.NoError(t, err)
	assert.True(t, voided.IsVoided)
	assert.Equal(t, "Customer returned item", voided.VoidReason)
	assert.Same(t, voided, sess.Workspace().LastSale())
}

func TestExportSalesWalksEveryPage(t *testing.T) {
	repo := &fakeSales{
		pages: [][]entity.Sale{
			{saleFixture("s1", "INV-1", "Ada"), saleFixture("s2", "INV-2", "Bola")},
			{saleFixture("s3", "INV-3", "Ada")},
		},
		summary: &entity.SalesSummary{TotalSales: decimal.NewFromInt(3000), TotalTransactions: 3},
	}
	svc := NewSaleService(repo, time.UTC, nil)

	var buf bytes.Buffer
	name, err := svc.ExportSales(context.Background(), &buf, &SaleQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "sales-2024-01-01-to-2024-01-31.xlsx", name)

	require.Len(t, repo.lastList, 2)
	assert.Equal(t, pagination.MaxLimit, repo.lastList[0].Pagination.Limit)
	assert.Equal(t, 2, repo.lastList[1].Pagination.Page)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.NotEmpty(t, f.GetSheetList())
}

func TestExportSalesRejectsBadRange(t *testing.T) {
	svc := NewSaleService(&fakeSales{}, time.UTC, nil)

	var buf bytes.Buffer
	_, err := svc.ExportSales(context.Background(), &buf, &SaleQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Zero(t, buf.Len())
}
