package request

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	PaymentMethod string `form:"paymentMethod"`
	CashierID     string `form:"cashierId"`
	Search        string `form:"search"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

// DateRangeRequest bounds a summary by ISO dates
type DateRangeRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// VoidSaleRequest represents a void request
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ReceiptRequest selects the sale a receipt is rendered for; empty means the last sale
type ReceiptRequest struct {
	SaleID string `form:"saleId" json:"saleId"`
	Format string `form:"format" binding:"omitempty,oneof=json html"`
}
