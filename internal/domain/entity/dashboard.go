package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the landing page summary
type DashboardStats struct {
	Today       TodayStats     `json:"today"`
	Inventory   InventoryStats `json:"inventory"`
	RecentSales []RecentSale   `json:"recentSales"`
	TopProducts []TopProduct   `json:"topProducts"`
}

type TodayStats struct {
	Sales        decimal.Decimal `json:"sales"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions" validate:"gte=0"`
}

type InventoryStats struct {
	TotalProducts    int               `json:"totalProducts" validate:"gte=0"`
	LowStockCount    int               `json:"lowStockCount" validate:"gte=0"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts" validate:"dive"`
}

type LowStockProduct struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorderLevel"`
}

// RecentSale is the abbreviated sale listed on the dashboard
type RecentSale struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	CustomerName  string          `json:"customerName,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TopProduct is a best seller over the backend's reporting window
type TopProduct struct {
	ProductID    string          `json:"productId,omitempty"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
