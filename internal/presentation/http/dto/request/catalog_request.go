package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	Code string `json:"code" binding:"omitempty,min=2,max=10"`
}

// CreateProductRequest represents a product creation request. Prices may be
// sent as numbers or decimal strings.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"categoryId" binding:"required"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity" binding:"min=0"`
	ReorderLevel *int            `json:"reorderLevel" binding:"omitempty,min=0"`
	ImageURL     string          `json:"imageUrl" binding:"omitempty,url"`
	Barcode      string          `json:"barcode" binding:"omitempty,max=64"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name         *string      `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string      `json:"description"`
	CategoryID   *string      `json:"categoryId" binding:"omitempty,min=1"`
	CostPrice    *json.Number `json:"costPrice"`
	SellingPrice *json.Number `json:"sellingPrice"`
	Quantity     *int         `json:"quantity" binding:"omitempty,min=0"`
	ReorderLevel *int         `json:"reorderLevel" binding:"omitempty,min=0"`
	ImageURL     *string      `json:"imageUrl"`
	Barcode      *string      `json:"barcode" binding:"omitempty,max=64"`
	IsActive     *bool        `json:"isActive"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search          string `form:"search"`
	CategoryID      string `form:"categoryId"`
	LowStock        bool   `form:"lowStock"`
	IncludeInactive bool   `form:"includeInactive"`
	Page            int    `form:"page"`
	Limit           int    `form:"limit"`
}
