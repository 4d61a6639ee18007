package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ProductColumns is the header row of the product import template
var ProductColumns = []string{"Name", "Description", "Category", "Cost Price", "Selling Price", "Quantity", "Reorder Level", "Barcode"}

// ErrNoRows is returned for a workbook without data rows
var ErrNoRows = errors.New("spreadsheet: no product rows")

// ProductRow is one parsed row of an import workbook. Prices stay textual so the
// caller can report bad values per row.
type ProductRow struct {
	Name         string
	Description  string
	Category     string
	CostPrice    string
	SellingPrice string
	Quantity     int
	ReorderLevel *int
	Barcode      string
}

// ReadProducts parses the first sheet of an .xlsx workbook. Columns are located
// by header name, so their order does not matter. Blank rows are skipped.
func ReadProducts(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("spreadsheet: missing %q column", "Name")
	}
	cell := func(row []string, name string) string {
		i, ok := col[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]ProductRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if strings.Join(row, "") == "" {
			continue
		}
		p := ProductRow{
			Name:         cell(row, "Name"),
			Description:  cell(row, "Description"),
			Category:     cell(row, "Category"),
			CostPrice:    cell(row, "Cost Price"),
			SellingPrice: cell(row, "Selling Price"),
			Barcode:      cell(row, "Barcode"),
		}
		if q := cell(row, "Quantity"); q != "" {
			v, err := strconv.Atoi(q)
			if err != nil {
				return nil, fmt.Errorf("spreadsheet: row %d: quantity %q is not a whole number", n+2, q)
			}
			p.Quantity = v
		}
		if rl := cell(row, "Reorder Level"); rl != "" {
			v, err := strconv.Atoi(rl)
			if err != nil {
				return nil, fmt.Errorf("spreadsheet: row %d: reorder level %q is not a whole number", n+2, rl)
			}
			p.ReorderLevel = &v
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

// WriteProductTemplate writes an empty import workbook with the expected header
func WriteProductTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(ProductColumns))
	for i, c := range ProductColumns {
		header[i] = c
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		return fmt.Errorf("spreadsheet: header: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: write: %w", err)
	}
	return nil
}
