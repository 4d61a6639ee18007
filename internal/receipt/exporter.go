package receipt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/printer"
	"github.com/sangkips/stockflow-dashboard/pkg/utils"
	"go.uber.org/zap"
)

// State is the exporter's position in idle -> rendering-preview -> printing|exporting -> idle
type State string

const (
	StateIdle             State = "idle"
	StateRenderingPreview State = "rendering-preview"
	StatePrinting         State = "printing"
	StateExporting        State = "exporting"
)

// DefaultRetryDelay is how long print/export waits once for a pending preview
const DefaultRetryDelay = 50 * time.Millisecond

var (
	// ErrBusy is returned when another receipt operation is in flight; nothing is started
	ErrBusy = apperror.ErrExportBusy
	// ErrNotReady is returned when no preview completed, even after one retry
	ErrNotReady = apperror.ErrNotReady

	errPreviewPending = errors.New("receipt: preview pending")
)

// Document is a printable document handed to a renderer
type Document struct {
	HTML      []byte
	ElementID string
	FileName  string
}

// PDF is a rendered receipt ready for download
type PDF struct {
	FileName string
	Data     []byte
}

// PrintableDocumentRenderer turns a receipt document into a PDF
type PrintableDocumentRenderer interface {
	RenderPDF(ctx context.Context, doc Document) (*PDF, error)
}

// Preview is a rendered receipt held until the next sale replaces it
type Preview struct {
	Sale       *entity.Sale
	View       *View
	HTML       []byte
	ESCPOS     []byte
	FileName   string
	RenderedAt time.Time
}

// ExporterConfig wires an Exporter
type ExporterConfig struct {
	Options    Options
	Printer    printer.Printer
	Renderer   PrintableDocumentRenderer
	CharWidth  int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Exporter runs receipt operations one at a time
type Exporter struct {
	mu      sync.Mutex
	state   State
	preview *Preview
	// pending is a sale that arrived while busy; it becomes the preview on idle
	pending *entity.Sale

	opts       Options
	printer    printer.Printer
	renderer   PrintableDocumentRenderer
	charWidth  int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewExporter creates an idle exporter with no preview
func NewExporter(cfg ExporterConfig) *Exporter {
	if cfg.Printer == nil {
		cfg.Printer = printer.NewNullPrinter()
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Exporter{
		state:      StateIdle,
		opts:       cfg.Options.withDefaults(),
		printer:    cfg.Printer,
		renderer:   cfg.Renderer,
		charWidth:  cfg.CharWidth,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
	}
}

// State returns the current state
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Current returns the last completed preview, or nil
func (e *Exporter) Current() *Preview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preview
}

// RenderPreview formats sale and makes it the current preview. While another
// operation runs, sale is queued and rendered as soon as the exporter is idle
// again; ErrBusy is still returned so the caller knows it is not ready yet.
func (e *Exporter) RenderPreview(sale *entity.Sale) (*Preview, error) {
	e.mu.Lock()
	if e.state != StateIdle {
		e.pending = sale
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.state = StateRenderingPreview
	e.pending = nil
	e.mu.Unlock()

	p, err := e.buildPreview(sale)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateIdle
	if err == nil {
		e.preview = p
	}
	e.settle()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (e *Exporter) buildPreview(sale *entity.Sale) (*Preview, error) {
	view, err := BuildView(sale, e.opts)
	if err != nil {
		return nil, err
	}
	html, err := RenderHTML(view)
	if err != nil {
		return nil, apperror.NewExportError("Receipt preview", err)
	}
	return &Preview{
		Sale:       sale,
		View:       view,
		HTML:       html,
		ESCPOS:     FormatESCPOS(view, e.charWidth),
		FileName:   utils.ReceiptFileName(sale.InvoiceNumber),
		RenderedAt: time.Now(),
	}, nil
}

// Print sends the current preview to the thermal printer
func (e *Exporter) Print(ctx context.Context) error {
	p, err := e.acquire(ctx, StatePrinting)
	if err != nil {
		return err
	}
	defer e.release()

	if err := e.printer.Print(ctx, p.ESCPOS); err != nil {
		e.logger.Error("receipt print failed",
			zap.String("invoice", p.View.InvoiceNumber),
			zap.String("printer", e.printer.Name()),
			zap.Error(err))
		return apperror.NewExportError("Print", err)
	}
	e.logger.Info("receipt printed", zap.String("invoice", p.View.InvoiceNumber), zap.String("printer", e.printer.Name()))
	return nil
}

// ExportPDF renders the current preview as a PDF named after the invoice
func (e *Exporter) ExportPDF(ctx context.Context) (*PDF, error) {
	if e.renderer == nil {
		return nil, apperror.NewExportError("PDF export", errors.New("no document renderer configured"))
	}
	p, err := e.acquire(ctx, StateExporting)
	if err != nil {
		return nil, err
	}
	defer e.release()

	pdf, err := e.renderer.RenderPDF(ctx, Document{HTML: p.HTML, ElementID: ElementID, FileName: p.FileName})
	if err != nil {
		e.logger.Error("receipt pdf export failed", zap.String("invoice", p.View.InvoiceNumber), zap.Error(err))
		return nil, apperror.NewExportError("PDF export", err)
	}
	if pdf.FileName == "" {
		pdf.FileName = p.FileName
	}
	return pdf, nil
}

// PrinterStatus describes the configured printer
type PrinterStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// PrinterStatus probes the printer
func (e *Exporter) PrinterStatus(ctx context.Context) PrinterStatus {
	return PrinterStatus{Name: e.printer.Name(), Available: e.printer.Available(ctx)}
}

// acquire moves from idle to next. A missing or pending preview is retried once
// after the retry delay before failing with ErrNotReady.
func (e *Exporter) acquire(ctx context.Context, next State) (*Preview, error) {
	p, err := e.begin(next)
	if !errors.Is(err, errPreviewPending) {
		return p, err
	}

	timer := time.NewTimer(e.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	p, err = e.begin(next)
	if errors.Is(err, errPreviewPending) {
		return nil, ErrNotReady
	}
	return p, err
}

func (e *Exporter) begin(next State) (*Preview, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StatePrinting, StateExporting:
		return nil, ErrBusy
	case StateRenderingPreview:
		return nil, errPreviewPending
	}
	if e.preview == nil {
		return nil, errPreviewPending
	}
	e.state = next
	return e.preview, nil
}

func (e *Exporter) release() {
	e.mu.Lock()
	e.state = StateIdle
	e.settle()
	e.mu.Unlock()
}

// settle renders a queued sale. Callers hold e.mu with the exporter idle.
func (e *Exporter) settle() {
	sale := e.pending
	if sale == nil {
		return
	}
	e.pending = nil
	p, err := e.buildPreview(sale)
	if err != nil {
		e.logger.Warn("queued receipt preview failed", zap.String("invoice", sale.InvoiceNumber), zap.Error(err))
		return
	}
	e.preview = p
}
