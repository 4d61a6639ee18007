// Package receipt turns a completed sale into a printable receipt: a view model,
// an ESC/POS byte stream for thermal printers and a self-contained HTML document
// for PDF export. Exporter serializes preview, print and export per workspace.
package receipt

import (
	"strconv"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/money"
)

// DateLayout is the receipt timestamp format, e.g. "Jan 02, 2024 14:05:09"
const DateLayout = "Jan 02, 2006 15:04:05"

// Item is one formatted receipt line
type Item struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// View is the fully formatted receipt. Building it is deterministic for a given sale.
type View struct {
	Header        entity.ReceiptHeader `json:"header"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Date          string               `json:"date"`
	Cashier       string               `json:"cashier"`
	CustomerName  string               `json:"customerName,omitempty"`
	CustomerPhone string               `json:"customerPhone,omitempty"`
	Items         []Item               `json:"items"`
	Subtotal      string               `json:"subtotal"`
	Discount      string               `json:"discount,omitempty"`
	Total         string               `json:"total"`
	PaymentMethod string               `json:"paymentMethod"`
	Barcode       string               `json:"barcode"`
	Voided        bool                 `json:"voided,omitempty"`
}

// HasDiscount reports whether the discount line is shown. Discount holds the
// stored discount amount as "-₦300" and is empty when none applies.
func (v *View) HasDiscount() bool {
	return v.Discount != ""
}

// Options controls receipt formatting
type Options struct {
	Header   entity.ReceiptHeader
	Money    *money.Formatter
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Money == nil {
		o.Money = money.DefaultFormatter
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// BuildView formats a sale for display
func BuildView(sale *entity.Sale, opts Options) (*View, error) {
	if sale == nil || sale.InvoiceNumber == "" {
		return nil, apperror.ErrReceiptMissing
	}
	opts = opts.withDefaults()
	f := opts.Money

	v := &View{
		Header:        opts.Header,
		InvoiceNumber: sale.InvoiceNumber,
		Cashier:       sale.Cashier.Name,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.CustomerPhone,
		Items:         make([]Item, 0, len(sale.Items)),
		Subtotal:      f.Format(sale.Subtotal),
		Total:         f.Format(sale.Total),
		PaymentMethod: sale.PaymentMethod.String(),
		Barcode:       sale.InvoiceNumber,
		Voided:        sale.IsVoided,
	}
	if !sale.CreatedAt.IsZero() {
		v.Date = sale.CreatedAt.In(opts.Location).Format(DateLayout)
	}
	if sale.HasDiscount() {
		v.Discount = "-" + f.Format(sale.Discount)
	}

	for _, it := range sale.Items {
		v.Items = append(v.Items, Item{
			Name:      it.Product.Name,
			SKU:       it.Product.SKU,
			Quantity:  strconv.Itoa(it.Quantity),
			UnitPrice: f.Format(it.UnitPrice),
			Subtotal:  f.Format(it.Subtotal),
		})
	}
	return v, nil
}
