package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/domain/cart"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
)

// POSHandler serves the point of sale screen. The cart lives in the
// operator's session workspace.
type POSHandler struct {
	posService *service.POSService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(posService *service.POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

// Catalog loads the products and categories the cashier sells from
func (h *POSHandler) Catalog(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	catalog, err := h.posService.LoadCatalog(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog loaded", catalog)
}

// Cart returns the current cart
func (h *POSHandler) Cart(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	response.OK(c, "Cart retrieved", h.posService.Cart(sess))
}

// AddItem adds one unit of a product, by ID or scanned barcode
func (h *POSHandler) AddItem(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		view *service.CartView
		err  error
	)
	if req.ProductID != "" {
		view, err = h.posService.AddProduct(c.Request.Context(), sess, req.ProductID)
	} else {
		view, err = h.posService.AddByBarcode(c.Request.Context(), sess, req.Barcode)
	}
	h.respond(c, sess, view, err, "Item added to cart")
}

// SetQuantity changes a line's quantity; zero removes the line
func (h *POSHandler) SetQuantity(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.posService.SetQuantity(sess, c.Param("productId"), req.Quantity)
	h.respond(c, sess, view, err, "Cart updated")
}

// RemoveItem removes a line from the cart
func (h *POSHandler) RemoveItem(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	response.OK(c, "Item removed from cart", h.posService.Remove(sess, c.Param("productId")))
}

// Clear empties the cart
func (h *POSHandler) Clear(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	response.OK(c, "Cart cleared", h.posService.Clear(sess))
}

// SetDiscount sets the cart discount
func (h *POSHandler) SetDiscount(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.posService.SetDiscount(sess, req.Value, req.Type)
	h.respond(c, sess, view, err, "Discount applied")
}

// SetCustomer attaches customer details to the sale
func (h *POSHandler) SetCustomer(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, "Customer updated", h.posService.SetCustomer(sess, req.Name, req.Phone))
}

// Checkout records the sale and opens its receipt preview
func (h *POSHandler) Checkout(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	var req request.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := h.posService.Checkout(c.Request.Context(), sess, req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale completed successfully", gin.H{
		"sale": sale,
		"cart": h.posService.Cart(sess),
	})
}

// respond answers a cart mutation. A stock warning leaves the cart unchanged,
// so the current cart is returned alongside the message.
func (h *POSHandler) respond(c *gin.Context, sess *service.Session, view *service.CartView, err error, message string) {
	if err == nil {
		response.OK(c, message, view)
		return
	}
	var warning *cart.StockWarning
	if errors.As(err, &warning) {
		response.ErrorWithData(c, err, h.posService.Cart(sess))
		return
	}
	response.Error(c, err)
}
