package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func saleQuery(filter *request.SaleFilterRequest) *service.SaleQuery {
	params := pagination.Params{Page: filter.Page, Limit: filter.Limit}
	params.Validate()
	return &service.SaleQuery{
		Pagination:    params,
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
		PaymentMethod: filter.PaymentMethod,
		CashierID:     filter.CashierID,
		Search:        filter.Search,
	}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), saleQuery(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

// Summary aggregates sales over a date range
func (h *SaleHandler) Summary(c *gin.Context) {
	var req request.DateRangeRequest
	if !bindQuery(c, &req) {
		return
	}

	summary, err := h.saleService.GetSummary(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved successfully", summary)
}

// Get handles getting a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Void handles voiding a sale
func (h *SaleHandler) Void(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.VoidSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.VoidSale(c.Request.Context(), sess, c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale voided successfully", sale)
}

// Export downloads the filtered sales as an .xlsx workbook
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	var buf bytes.Buffer
	name, err := h.saleService.ExportSales(c.Request.Context(), &buf, saleQuery(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
