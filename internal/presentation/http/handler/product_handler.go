package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/spreadsheet"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportSize   = 10 << 20
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := pagination.Params{Page: filter.Page, Limit: filter.Limit}
	params.Validate()

	result, err := h.productService.ListProducts(c.Request.Context(), &service.ProductQuery{
		Pagination:      params,
		Search:          filter.Search,
		CategoryID:      filter.CategoryID,
		LowStock:        filter.LowStock,
		IncludeInactive: filter.IncludeInactive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode looks a product up by its barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// GetLowStock handles getting products at or below their reorder level
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", products)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		ImageURL:     req.ImageURL,
		Barcode:      req.Barcode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Update handles partially updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	update := entity.ProductUpdate(req)
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deactivating a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// Import creates products from an uploaded .xlsx file
func (h *ProductHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An .xlsx file is required in the \"file\" field")
		return
	}
	if fh.Size > maxImportSize {
		response.BadRequest(c, "The file is larger than 10 MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer f.Close()

	result, err := h.productService.ImportProductsFile(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Import completed", result)
}

// Template downloads an empty import workbook
func (h *ProductHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteProductTemplate(&buf); err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products-template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
