package entity

// ReceiptHeader holds the store details printed around every receipt
type ReceiptHeader struct {
	StoreName string   `json:"storeName"`
	Tagline   string   `json:"tagline,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Footer    []string `json:"footer,omitempty"`
	PoweredBy []string `json:"poweredBy,omitempty"`
}
