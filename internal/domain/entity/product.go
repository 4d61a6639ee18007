package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Prices travel as decimal strings.
type Product struct {
	ID           string          `json:"id" validate:"required"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description,omitempty"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	ReorderLevel int             `json:"reorderLevel" validate:"gte=0"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	IsActive     bool            `json:"isActive"`
	Category     CategoryRef     `json:"category"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsLowStock reports whether on-hand quantity has fallen to the reorder level
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// InStock reports whether at least one unit is on hand
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// Matches reports whether the product's name or SKU contains term, case-insensitively
func (p *Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term)
}

// ProductRef is the short product reference embedded in sales and stock logs
type ProductRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// ProductInput is the create body for a product. Prices are sent as JSON numbers.
type ProductInput struct {
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	CategoryID   string      `json:"categoryId"`
	CostPrice    json.Number `json:"costPrice"`
	SellingPrice json.Number `json:"sellingPrice"`
	Quantity     int         `json:"quantity"`
	ReorderLevel *int        `json:"reorderLevel,omitempty"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	Barcode      string      `json:"barcode,omitempty"`
}

// ProductUpdate is a partial update; nil fields are left untouched
type ProductUpdate struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	CategoryID   *string      `json:"categoryId,omitempty"`
	CostPrice    *json.Number `json:"costPrice,omitempty"`
	SellingPrice *json.Number `json:"sellingPrice,omitempty"`
	Quantity     *int         `json:"quantity,omitempty"`
	ReorderLevel *int         `json:"reorderLevel,omitempty"`
	ImageURL     *string      `json:"imageUrl,omitempty"`
	Barcode      *string      `json:"barcode,omitempty"`
	IsActive     *bool        `json:"isActive,omitempty"`
}

// Number converts a decimal into the JSON number form the backend expects
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
