// Package cart holds the point-of-sale working sale: ordered lines checked
// against last-known stock, a discount, optional customer details, and the
// totals derived from them.
package cart

import (
	"fmt"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Product is the latest fetched snapshot.
type Line struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal returns the line's selling price times quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.SellingPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the monetary summary of a cart. Subtotal - DiscountAmount == Total always holds.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// StockWarning is returned when a change would exceed the product's on-hand quantity.
// The cart is left unchanged.
type StockWarning struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (w *StockWarning) Error() string {
	if w.Available <= 0 {
		return fmt.Sprintf("%s is out of stock", w.Name)
	}
	return fmt.Sprintf("Only %d units available in stock", w.Available)
}

// Unwrap exposes the warning as a validation error
func (w *StockWarning) Unwrap() error {
	return apperror.Validation(w.Error())
}

// Adjustment reports a line changed by RefreshStock
type Adjustment struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Removed   bool   `json:"removed"`
}

// Cart is the working sale of one POS session. It is not safe for concurrent use.
type Cart struct {
	lines         []Line
	discountValue decimal.Decimal
	discountType  enum.DiscountType
	customerName  string
	customerPhone string
}

// New returns an empty cart with no discount
func New() *Cart {
	return &Cart{discountType: enum.DiscountTypeAmount}
}

func (c *Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart. An existing line takes p as its snapshot
// and is incremented unless it already holds every unit on hand. A line above
// the new on-hand quantity is clamped to it, or removed when nothing is left.
func (c *Cart) Add(p entity.Product) error {
	if i := c.index(p.ID); i >= 0 {
		line := &c.lines[i]
		line.Product = p
		if line.Quantity < p.Quantity {
			line.Quantity++
			return nil
		}
		warning := &StockWarning{ProductID: p.ID, Name: p.Name, Requested: line.Quantity + 1, Available: p.Quantity}
		switch {
		case p.Quantity <= 0:
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		case line.Quantity > p.Quantity:
			line.Quantity = p.Quantity
		}
		return warning
	}

	if p.Quantity < 1 {
		return &StockWarning{ProductID: p.ID, Name: p.Name, Requested: 1, Available: p.Quantity}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	return nil
}

// SetQuantity sets a line's quantity. n <= 0 removes the line; more than on hand is
// rejected with a StockWarning and the previous quantity kept. Unknown products are ignored.
func (c *Cart) SetQuantity(productID string, n int) error {
	i := c.index(productID)
	if i < 0 {
		return nil
	}
	if n <= 0 {
		c.Remove(productID)
		return nil
	}

	line := &c.lines[i]
	if n > line.Product.Quantity {
		return &StockWarning{ProductID: productID, Name: line.Product.Name, Requested: n, Available: line.Product.Quantity}
	}
	line.Quantity = n
	return nil
}

// Remove deletes a line
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart and resets the discount and customer fields
func (c *Cart) Clear() {
	c.lines = nil
	c.discountValue = decimal.Zero
	c.discountType = enum.DiscountTypeAmount
	c.customerName = ""
	c.customerPhone = ""
}

// SetDiscount sets the discount. A percentage above 100 is accepted here and
// rejected at checkout when it drives the total to zero or below.
func (c *Cart) SetDiscount(value decimal.Decimal, kind enum.DiscountType) error {
	kind = kind.OrDefault()
	if !kind.IsValid() {
		return apperror.Validation(fmt.Sprintf("Invalid discount type %q", kind))
	}
	if value.IsNegative() {
		return apperror.Validation("Discount cannot be negative")
	}
	c.discountValue = value
	c.discountType = kind
	return nil
}

// Discount returns the discount value and kind
func (c *Cart) Discount() (decimal.Decimal, enum.DiscountType) {
	return c.discountValue, c.discountType
}

// SetCustomer records optional customer details for the receipt
func (c *Cart) SetCustomer(name, phone string) {
	c.customerName = name
	c.customerPhone = phone
}

// Customer returns the customer name and phone
func (c *Cart) Customer() (name, phone string) {
	return c.customerName, c.customerPhone
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// Quantity returns the quantity held for a product, 0 when absent
func (c *Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Totals computes the cart's current totals
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.lines, c.discountValue, c.discountType)
}

// RefreshStock replaces line snapshots with freshly fetched products. A line now
// holding more than is on hand is clamped, or removed when nothing is left.
// Lines whose product is absent from products are kept as they are.
func (c *Cart) RefreshStock(products []entity.Product) []Adjustment {
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var adjustments []Adjustment
	kept := c.lines[:0]
	for _, line := range c.lines {
		p, ok := byID[line.Product.ID]
		if !ok {
			kept = append(kept, line)
			continue
		}
		line.Product = p
		if line.Quantity > p.Quantity {
			adj := Adjustment{ProductID: p.ID, Name: p.Name, From: line.Quantity, To: p.Quantity}
			if p.Quantity <= 0 {
				adj.To = 0
				adj.Removed = true
				adjustments = append(adjustments, adj)
				continue
			}
			line.Quantity = p.Quantity
			adjustments = append(adjustments, adj)
		}
		kept = append(kept, line)
	}
	c.lines = kept
	return adjustments
}

// ComputeTotals is the pure totals function:
// subtotal = sum(sellingPrice * quantity), discount = PERCENTAGE ? subtotal*value/100 : value,
// total = subtotal - discount. Nothing is clamped.
func ComputeTotals(lines []Line, value decimal.Decimal, kind enum.DiscountType) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}

	discount := value
	if kind == enum.DiscountTypePercentage {
		discount = subtotal.Mul(value).Div(decimal.NewFromInt(100))
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}
}
