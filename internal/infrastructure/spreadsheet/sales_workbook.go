package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	SalesSheet   = "Sales"
	SummarySheet = "Summary"
	DateLayout   = "2006-01-02 15:04"
)

var salesHeader = []interface{}{
	"Invoice", "Date", "Cashier", "Customer", "Phone", "Items",
	"Subtotal", "Discount", "Total", "Profit", "Payment Method", "Voided",
}

// WriteSales writes sales, and the summary when given, as an .xlsx workbook to w
func WriteSales(w io.Writer, sales []entity.Sale, summary *entity.SalesSummary, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SalesSheet); err != nil {
		return fmt.Errorf("spreadsheet: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SalesSheet, "A1", &salesHeader); err != nil {
		return fmt.Errorf("spreadsheet: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(SalesSheet, 1, 1, bold)
	}

	for i, s := range sales {
		items := 0
		for _, it := range s.Items {
			items += it.Quantity
		}
		date := ""
		if !s.CreatedAt.IsZero() {
			date = s.CreatedAt.In(loc).Format(DateLayout)
		}
		row := []interface{}{
			s.InvoiceNumber, date, s.Cashier.Name, s.CustomerName, s.CustomerPhone, items,
			s.Subtotal.InexactFloat64(), s.Discount.InexactFloat64(), s.Total.InexactFloat64(),
			s.TotalProfit.InexactFloat64(), s.PaymentMethod.String(), yesNo(s.IsVoided),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SalesSheet, cell, &row); err != nil {
			return fmt.Errorf("spreadsheet: row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(SalesSheet, "A", "A", 22)
	_ = f.SetColWidth(SalesSheet, "B", "E", 18)

	if summary != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return fmt.Errorf("spreadsheet: summary sheet: %w", err)
		}
		rows := [][]interface{}{
			{"Total Sales", summary.TotalSales.InexactFloat64()},
			{"Total Profit", summary.TotalProfit.InexactFloat64()},
			{"Transactions", summary.TotalTransactions},
			{"Average Transaction", summary.AverageTransaction.InexactFloat64()},
		}
		for i := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
				return fmt.Errorf("spreadsheet: summary row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: write: %w", err)
	}
	return nil
}

// SalesFileName names an export covering the given date range
func SalesFileName(start, end string) string {
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("sales-%s-to-%s.xlsx", start, end)
	case start != "":
		return fmt.Sprintf("sales-from-%s.xlsx", start)
	case end != "":
		return fmt.Sprintf("sales-until-%s.xlsx", end)
	default:
		return "sales.xlsx"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
