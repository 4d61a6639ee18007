package request

import (
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds one unit by product id or scanned barcode
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required_without=Barcode"`
	Barcode   string `json:"barcode" binding:"required_without=ProductID"`
}

// SetQuantityRequest sets a cart line's quantity; zero removes the line
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// DiscountRequest sets the cart discount
type DiscountRequest struct {
	Value decimal.Decimal   `json:"value"`
	Type  enum.DiscountType `json:"type" binding:"omitempty,oneof=AMOUNT PERCENTAGE"`
}

// CustomerRequest attaches optional customer details to the sale
type CustomerRequest struct {
	Name  string `json:"name" binding:"max=255"`
	Phone string `json:"phone" binding:"max=32"`
}

// CheckoutRequest submits the cart
type CheckoutRequest struct {
	PaymentMethod enum.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH TRANSFER POS"`
}
