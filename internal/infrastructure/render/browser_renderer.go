package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png" // DecodeConfig for screenshots
	"io"
	"math"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sangkips/stockflow-dashboard/internal/receipt"
	"go.uber.org/zap"
)

// Receipt page geometry in millimetres
const (
	PageWidthMM     = 80.0
	ImageWidthMM    = 70.0
	MarginMM        = 5.0
	MinPageHeightMM = 200.0
	DeviceScale     = 2.0

	mmPerInch = 25.4
)

// BrowserRenderer rasterizes receipt documents in headless Chromium and embeds the
// image in an 80mm-wide PDF. The browser is launched on first use and shared.
type BrowserRenderer struct {
	bin     string
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserRenderer creates a renderer. An empty bin lets rod find or download a browser.
func NewBrowserRenderer(bin string, timeout time.Duration, logger *zap.Logger) *BrowserRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserRenderer{bin: bin, timeout: timeout, logger: logger}
}

func (r *BrowserRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true).Leakless(false)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("render: launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("render: connect browser: %w", err)
	}
	r.logger.Info("headless browser started", zap.String("control_url", u))
	r.browser = b
	return b, nil
}

// RenderPDF implements receipt.PrintableDocumentRenderer
func (r *BrowserRenderer) RenderPDF(ctx context.Context, doc receipt.Document) (*receipt.PDF, error) {
	b, err := r.connect()
	if err != nil {
		return nil, err
	}
	b = b.Context(ctx).Timeout(r.timeout)

	img, err := r.screenshot(b, doc)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("render: decode screenshot: %w", err)
	}

	layout := ComputeLayout(cfg.Width, cfg.Height)
	data, err := r.embed(b, img, layout)
	if err != nil {
		return nil, err
	}
	return &receipt.PDF{FileName: doc.FileName, Data: data}, nil
}

func (r *BrowserRenderer) screenshot(b *rod.Browser, doc receipt.Document) ([]byte, error) {
	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("render: open page: %w", err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             400,
		Height:            1200,
		DeviceScaleFactor: DeviceScale,
	}); err != nil {
		return nil, fmt.Errorf("render: set viewport: %w", err)
	}
	if err := page.SetDocumentContent(string(doc.HTML)); err != nil {
		return nil, fmt.Errorf("render: load receipt: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("render: wait for receipt: %w", err)
	}

	el, err := page.Element("#" + doc.ElementID)
	if err != nil {
		return nil, fmt.Errorf("render: receipt element not found: %w", err)
	}
	img, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("render: rasterize receipt: %w", err)
	}
	return img, nil
}

func (r *BrowserRenderer) embed(b *rod.Browser, img []byte, layout Layout) ([]byte, error) {
	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("render: open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(layout.HTML(img)); err != nil {
		return nil, fmt.Errorf("render: load pdf page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("render: wait for pdf page: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      inches(PageWidthMM),
		PaperHeight:     inches(layout.PageHeightMM),
		MarginTop:       inches(0),
		MarginBottom:    inches(0),
		MarginLeft:      inches(0),
		MarginRight:     inches(0),
		PageRanges:      "1",
	})
	if err != nil {
		return nil, fmt.Errorf("render: print pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("render: read pdf: %w", err)
	}
	return data, nil
}

// Close shuts the browser down
func (r *BrowserRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// Layout places a receipt image on the PDF page
type Layout struct {
	ImageWidthMM  float64
	ImageHeightMM float64
	PageHeightMM  float64
}

// ComputeLayout scales a widthPx x heightPx image to 70mm wide with 5mm margins.
// The page is at least 200mm tall and grows with the image.
func ComputeLayout(widthPx, heightPx int) Layout {
	h := 0.0
	if widthPx > 0 {
		h = ImageWidthMM * float64(heightPx) / float64(widthPx)
	}
	return Layout{
		ImageWidthMM:  ImageWidthMM,
		ImageHeightMM: h,
		PageHeightMM:  math.Max(MinPageHeightMM, h+2*MarginMM),
	}
}

// HTML returns the single-image document printed to PDF
func (l Layout) HTML(img []byte) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head><style>
@page { size: %.2fmm %.2fmm; margin: 0; }
html, body { margin: 0; padding: 0; background: #ffffff; }
img { display: block; margin: %.2fmm; width: %.2fmm; height: %.2fmm; }
</style></head><body><img src="data:image/png;base64,%s"></body></html>`,
		PageWidthMM, l.PageHeightMM, MarginMM, l.ImageWidthMM, l.ImageHeightMM,
		base64.StdEncoding.EncodeToString(img))
}

func inches(mm float64) *float64 {
	v := mm / mmPerInch
	return &v
}
