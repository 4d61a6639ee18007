package receipt

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// ElementID is the id of the receipt container in the HTML document
const ElementID = "receipt"

//go:embed templates/receipt.html.tmpl
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html.tmpl"))

type htmlData struct {
	*View
	Title        string
	BarcodeImage template.URL
}

// RenderHTML renders the view as a standalone document with inline styles only,
// so rasterizing it does not depend on any surrounding page.
func RenderHTML(v *View) ([]byte, error) {
	data := htmlData{View: v, Title: "Receipt " + v.InvoiceNumber}

	// An invoice number code128 cannot encode still prints as text.
	if img, err := BarcodePNG(v.Barcode, 2, 80); err == nil {
		data.BarcodeImage = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("receipt: render html: %w", err)
	}
	return buf.Bytes(), nil
}

// BarcodePNG encodes content as a Code 128 barcode image. moduleWidth is the
// width in pixels of the narrowest bar.
func BarcodePNG(content string, moduleWidth, height int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("receipt: empty barcode content")
	}
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("receipt: encode barcode: %w", err)
	}
	if moduleWidth < 1 {
		moduleWidth = 1
	}
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*moduleWidth, height)
	if err != nil {
		return nil, fmt.Errorf("receipt: scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("receipt: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
