package request

import (
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// RestockRequest adds units to a product
type RestockRequest struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	Notes     string           `json:"notes" binding:"max=500"`
}

// AdjustStockRequest records a manual stock movement
type AdjustStockRequest struct {
	ProductID string                 `json:"productId" binding:"required"`
	Quantity  int                    `json:"quantity" binding:"required"`
	Type      enum.StockMovementType `json:"type" binding:"required,oneof=IN OUT ADJUSTMENT"`
	Reason    string                 `json:"reason" binding:"required,max=255"`
	Notes     string                 `json:"notes" binding:"max=500"`
}

// StockLogFilterRequest represents stock log filter parameters
type StockLogFilterRequest struct {
	ProductID string `form:"productId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Type      string `form:"type"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}
