package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/spreadsheet"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryWithProductsIsRefusedLocally(t *testing.T) {
	repo := &fakeCategories{categories: []entity.Category{
		{ID: "c1", Name: "Electronics", Code: "ELE", Count: entity.CategoryCount{Products: 3}},
		{ID: "c2", Name: "Empty", Code: "EMP"},
	}}
	svc := NewCategoryService(repo)
	sess := testSession(nil)
	ctx := context.Background()

	_, err := svc.ListCategories(ctx, sess)
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, sess, "c1")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, `Cannot delete "Electronics" - it has 3 products`, err.Error())
	assert.Empty(t, repo.deletes)

	require.NoError(t, svc.DeleteCategory(ctx, sess, "c2"))
	assert.Equal(t, []string{"c2"}, repo.deletes)
	_, cached := sess.Workspace().category("c2")
	assert.False(t, cached)
}

func TestDeleteUncachedCategoryGoesToBackend(t *testing.T) {
	repo := &fakeCategories{}
	svc := NewCategoryService(repo)

	require.NoError(t, svc.DeleteCategory(context.Background(), testSession(nil), "c9"))
	assert.Equal(t, []string{"c9"}, repo.deletes)
}

func TestCreateCategoryNormalizesCode(t *testing.T) {
	svc := NewCategoryService(&fakeCategories{})
	sess := testSession(nil)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, sess, &CategoryInput{Name: " Electronics ", Code: " ele "})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", c.Name)
	assert.Equal(t, "ELE", c.Code)
	_, cached := sess.Workspace().category(c.ID)
	assert.True(t, cached)

	tests := []struct {
		name  string
		input CategoryInput
	}{
		{"missing name", CategoryInput{Code: "ELE"}},
		{"short code", CategoryInput{Name: "Tools", Code: "T"}},
		{"long code", CategoryInput{Name: "Tools", Code: "TOOLSANDMORE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, sess, &tt.input)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestFilterProducts(t *testing.T) {
	products := catalogProducts()

	tests := []struct {
		name  string
		query ProductQuery
		want  []string
	}{
		{"no filter", ProductQuery{}, []string{"p1", "p2"}},
		{"search by name", ProductQuery{Search: "widg"}, []string{"p1"}},
		{"search by sku", ProductQuery{Search: "acc-"}, []string{"p2"}},
		{"category", ProductQuery{CategoryID: "c1"}, []string{"p1"}},
		{"low stock", ProductQuery{LowStock: true}, []string{"p2"}},
		{"nothing matches", ProductQuery{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, &tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListProductsSendsServerFilters(t *testing.T) {
	repo := &fakeProducts{products: catalogProducts()}
	svc := NewProductService(repo, &fakeCategories{}, nil)

	res, err := svc.ListProducts(context.Background(), &ProductQuery{
		Pagination: pagination.Params{Page: 1, Limit: 20},
		Search:     "cable",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p2", res.Items[0].ID)
	require.NotNil(t, repo.lastList.IsActive)
	assert.True(t, *repo.lastList.IsActive)

	_, err = svc.ListProducts(context.Background(), &ProductQuery{IncludeInactive: true, CategoryID: "c1"})
	require.NoError(t, err)
	assert.Nil(t, repo.lastList.IsActive)
	assert.Equal(t, "c1", repo.lastList.CategoryID)
}

func TestCreateProductValidation(t *testing.T) {
	repo := &fakeProducts{}
	svc := NewProductService(repo, &fakeCategories{}, nil)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		CostPrice: decimal.NewFromInt(-1),
		Quantity:  -2,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)

	fields := make([]string, 0, len(appErr.Errors))
	for _, f := range appErr.Errors {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"name", "categoryId", "costPrice", "sellingPrice", "quantity"}, fields)
	assert.Empty(t, repo.created)

	_, err = svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:         " Widget ",
		CategoryID:   "c1",
		CostPrice:    decimal.RequireFromString("650.50"),
		SellingPrice: decimal.NewFromInt(1000),
		Quantity:     5,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Widget", repo.created[0].Name)
	assert.Equal(t, json.Number("650.5"), repo.created[0].CostPrice)
}

func TestUpdateProductRejectsNegativePrices(t *testing.T) {
	svc := NewProductService(&fakeProducts{}, &fakeCategories{}, nil)
	price := json.Number("-5")

	_, err := svc.UpdateProduct(context.Background(), "p1", &entity.ProductUpdate{SellingPrice: &price})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	name := "Renamed"
	p, err := svc.UpdateProduct(context.Background(), "p1", &entity.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestImportProducts(t *testing.T) {
	repo := &fakeProducts{}
	svc := NewProductService(repo, &fakeCategories{categories: catalogCategories()}, nil)

	res, err := svc.ImportProducts(context.Background(), []ImportProductRow{
		{Name: "Widget", CategoryName: "ele", CostPrice: "1,500.50", SellingPrice: "2000", Quantity: 4},
		{Name: "Mystery", CategoryName: "Toys", SellingPrice: "10"},
		{Name: "Cable", CategoryName: "Accessories", SellingPrice: "ten"},
		{Name: "", CategoryName: "Accessories", SellingPrice: "10"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, []ImportRowError{
		{Row: 3, Field: "category", Message: `Unknown category "Toys"`},
		{Row: 4, Field: "sellingPrice", Message: "Selling price must be a number"},
		{Row: 5, Field: "name", Message: "Name is required"},
	}, res.Errors)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "c1", repo.created[0].CategoryID)
	assert.Equal(t, json.Number("1500.5"), repo.created[0].CostPrice)
}

func TestImportProductsFileWithoutRows(t *testing.T) {
	svc := NewProductService(&fakeProducts{}, &fakeCategories{}, nil)

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteProductTemplate(&buf))

	_, err := svc.ImportProductsFile(context.Background(), &buf)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.ImportProductsFile(context.Background(), bytes.NewReader([]byte("not a workbook")))
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestGetProductByBarcodeNotFound(t *testing.T) {
	svc := NewProductService(&fakeProducts{products: catalogProducts()}, &fakeCategories{}, nil)

	p, err := svc.GetProductByBarcode(context.Background(), "5901234123457")
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)

	_, err = svc.GetProductByBarcode(context.Background(), "nope")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
