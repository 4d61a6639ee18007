package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale is a completed invoice. The backend derives every amount from its own records.
type Sale struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoiceNumber" validate:"required"`
	Items         []SaleItem         `json:"items" validate:"dive"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	DiscountType  enum.DiscountType  `json:"discountType,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Cashier       UserRef            `json:"cashier"`
	TotalProfit   decimal.Decimal    `json:"totalProfit"`
	IsVoided      bool               `json:"isVoided"`
	VoidReason    string             `json:"voidReason,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SaleItem is one invoiced line
type SaleItem struct {
	ID        string          `json:"id,omitempty"`
	Product   ProductRef      `json:"product"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// HasDiscount reports whether a discount was applied to the sale
func (s *Sale) HasDiscount() bool {
	return s.Discount.IsPositive()
}

// Matches reports whether the invoice number or customer name contains term, case-insensitively
func (s *Sale) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.InvoiceNumber), term) ||
		strings.Contains(strings.ToLower(s.CustomerName), term)
}

// SaleLine is a submitted cart line. Prices are never sent.
type SaleLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest is the sale submission body
type CreateSaleRequest struct {
	Items         []SaleLine         `json:"items"`
	Discount      json.Number        `json:"discount"`
	DiscountType  enum.DiscountType  `json:"discountType"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// VoidSaleRequest is the void body
type VoidSaleRequest struct {
	Reason string `json:"reason"`
}

// SalesSummary aggregates sales over a date range
type SalesSummary struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalTransactions  int             `json:"totalTransactions" validate:"gte=0"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}
