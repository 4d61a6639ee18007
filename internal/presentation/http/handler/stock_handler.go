package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
	"github.com/sangkips/stockflow-dashboard/pkg/pagination"
)

// StockHandler handles stock movement HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Logs handles listing stock movements
func (h *StockHandler) Logs(c *gin.Context) {
	var filter request.StockLogFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.stockService.ListLogs(c.Request.Context(), &service.StockLogQuery{
		Pagination: pagination.Params{Page: filter.Page, Limit: filter.Limit},
		ProductID:  filter.ProductID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Type:       filter.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Stock logs retrieved successfully", result)
}

// History returns every movement of one product
func (h *StockHandler) History(c *gin.Context) {
	logs, err := h.stockService.ProductHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock history retrieved successfully", logs)
}

// Restock adds units to a product. The product comes from the path when
// routed under /products/:id.
func (h *StockHandler) Restock(c *gin.Context) {
	var req request.RestockRequest
	if !bindJSON(c, &req) {
		return
	}
	if id := c.Param("id"); id != "" {
		req.ProductID = id
	}
	if req.ProductID == "" {
		response.BadRequest(c, "productId is required")
		return
	}

	out, err := h.stockService.Restock(c.Request.Context(), &service.RestockInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product restocked successfully", out)
}

// Adjust records a manual stock movement
func (h *StockHandler) Adjust(c *gin.Context) {
	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.stockService.Adjust(c.Request.Context(), &service.AdjustInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted successfully", result)
}
