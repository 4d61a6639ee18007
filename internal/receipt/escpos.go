package receipt

import (
	"github.com/sangkips/stockflow-dashboard/pkg/printer"
)

// FormatESCPOS converts a receipt view into ESC/POS bytes for a printer
// charWidth characters wide.
func FormatESCPOS(v *View, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)
	width := doc.Width()

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(v.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if v.Header.Tagline != "" {
		doc.Text(v.Header.Tagline)
	}
	if v.Header.Phone != "" {
		doc.TextF("Phone: %s", v.Header.Phone)
	}
	if v.Header.Email != "" {
		doc.TextF("Email: %s", v.Header.Email)
	}
	if v.Voided {
		doc.SetBold(true).Text("*** VOIDED ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("INVOICE:", v.InvoiceNumber).
		KeyValue("DATE:", v.Date).
		KeyValue("CASHIER:", v.Cashier)
	if v.CustomerName != "" {
		doc.KeyValue("CUSTOMER:", v.CustomerName)
	}
	if v.CustomerPhone != "" {
		doc.KeyValue("PHONE:", v.CustomerPhone)
	}

	doc.Separator('-')

	// Items: name takes what the three amount columns leave
	qtyW, amtW := 5, 12
	nameW := width - qtyW - 2*amtW
	if nameW < 8 {
		nameW = 8
	}
	doc.SetBold(true).
		Row(
			printer.Column{Text: "ITEM", Width: nameW},
			printer.Column{Text: "QTY", Width: qtyW, Align: printer.AlignCenter},
			printer.Column{Text: "PRICE", Width: amtW, Align: printer.AlignRight},
			printer.Column{Text: "TOTAL", Width: amtW, Align: printer.AlignRight},
		).
		SetBold(false)

	for _, it := range v.Items {
		doc.Row(
			printer.Column{Text: it.Name, Width: nameW},
			printer.Column{Text: it.Quantity, Width: qtyW, Align: printer.AlignCenter},
			printer.Column{Text: it.UnitPrice, Width: amtW, Align: printer.AlignRight},
			printer.Column{Text: it.Subtotal, Width: amtW, Align: printer.AlignRight},
		)
		if it.SKU != "" {
			doc.TextF("  %s", it.SKU)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("SUBTOTAL:", v.Subtotal)
	if v.HasDiscount() {
		doc.KeyValue("DISCOUNT:", v.Discount)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", v.Total).
		SetBold(false).
		KeyValue("PAYMENT METHOD:", v.PaymentMethod)

	doc.LineFeed().
		SetAlign(printer.AlignCenter).
		Barcode128(v.Barcode)

	// Footer
	doc.LineFeed()
	for i, line := range v.Header.Footer {
		doc.SetBold(i == 0).Text(line)
	}
	doc.SetBold(false)
	if len(v.Header.PoweredBy) > 0 {
		doc.SetAlign(printer.AlignLeft).Separator('-').SetAlign(printer.AlignCenter)
		for _, line := range v.Header.PoweredBy {
			doc.Text(line)
		}
	}

	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
