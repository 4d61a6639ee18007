package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
)

// StockLog is an append-only stock movement
type StockLog struct {
	ID          string                 `json:"id" validate:"required"`
	Product     ProductRef             `json:"product"`
	Type        enum.StockMovementType `json:"type" validate:"required"`
	Quantity    int                    `json:"quantity"`
	PreviousQty int                    `json:"previousQty"`
	NewQty      int                    `json:"newQty"`
	Reason      string                 `json:"reason"`
	Notes       string                 `json:"notes,omitempty"`
	User        UserRef                `json:"user"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// RestockRequest adds units to a product; CostPrice updates the product's cost when set
type RestockRequest struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	CostPrice json.Number `json:"costPrice,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// AdjustStockRequest records a manual movement
type AdjustStockRequest struct {
	ProductID string                 `json:"productId"`
	Quantity  int                    `json:"quantity"`
	Type      enum.StockMovementType `json:"type"`
	Reason    string                 `json:"reason"`
	Notes     string                 `json:"notes,omitempty"`
}

// StockResult is the backend answer to a restock or adjustment
type StockResult struct {
	Product *Product  `json:"product,omitempty"`
	Log     *StockLog `json:"log,omitempty"`
}
