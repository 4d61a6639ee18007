package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt preview, printing and PDF export
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Preview renders a sale's receipt, the last sale's when no saleId is given.
// format=html returns the printable document itself.
func (h *ReceiptHandler) Preview(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.ReceiptRequest
	if !bindQuery(c, &req) {
		return
	}
	if id := c.Param("id"); id != "" {
		req.SaleID = id
	}

	preview, err := h.receiptService.Preview(c.Request.Context(), sess, req.SaleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Format == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", preview.HTML)
		return
	}
	response.OK(c, "Receipt preview ready", gin.H{
		"receipt":    preview.View,
		"fileName":   preview.FileName,
		"renderedAt": preview.RenderedAt,
	})
}

// Print sends the current preview to the thermal printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	if err := h.receiptService.Print(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", h.receiptService.GetStatus(c.Request.Context(), sess))
}

// PDF downloads the current preview as a PDF
func (h *ReceiptHandler) PDF(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	pdf, err := h.receiptService.ExportPDF(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdf.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}

// GetStatus returns the printer and receipt export state
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus(c.Request.Context(), sess))
}

// TestPrint sends a sample receipt to the printer
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	view, err := h.receiptService.TestPrint(c.Request.Context())
	if err != nil {
		if view != nil {
			response.OK(c, "Test receipt built but printing failed", gin.H{
				"receipt": view,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{"receipt": view})
}
