package service

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/receipt"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/printer"
	"github.com/shopspring/decimal"
)

var errNoExporter = errors.New("receipt exporter not configured")

// ReceiptService handles receipt preview, thermal printing and PDF export.
// Each workspace has its own exporter, so one operator's print never blocks another's.
type ReceiptService struct {
	saleRepo  repository.SaleRepository
	printer   printer.Printer
	opts      receipt.Options
	charWidth int
}

// NewReceiptService creates a new receipt service. p and opts are used for test prints.
func NewReceiptService(saleRepo repository.SaleRepository, p printer.Printer, opts receipt.Options, charWidth int) *ReceiptService {
	if p == nil {
		p = printer.NewNullPrinter()
	}
	return &ReceiptService{saleRepo: saleRepo, printer: p, opts: opts, charWidth: charWidth}
}

// Preview renders the receipt of saleID, or of the workspace's last sale when
// saleID is empty, and makes it the current preview
func (s *ReceiptService) Preview(ctx context.Context, sess *Session, saleID string) (*receipt.Preview, error) {
	ws := sess.Workspace()
	exp := ws.Exporter()
	if exp == nil {
		return nil, apperror.NewExportError("Receipt preview", errNoExporter)
	}

	var sale *entity.Sale
	if saleID == "" {
		sale = ws.LastSale()
		if sale == nil {
			if cur := exp.Current(); cur != nil {
				return cur, nil
			}
			return nil, apperror.ErrReceiptMissing
		}
		if cur := exp.Current(); cur != nil && cur.Sale == sale {
			return cur, nil
		}
	} else {
		if cur := exp.Current(); cur != nil && cur.Sale.ID == saleID && !cur.Sale.IsVoided {
			return cur, nil
		}
		fetched, err := s.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sale = fetched
	}
	return exp.RenderPreview(sale)
}

// Print sends the current preview to the thermal printer
func (s *ReceiptService) Print(ctx context.Context, sess *Session) error {
	exp := sess.Workspace().Exporter()
	if exp == nil {
		return apperror.NewExportError("Print", errNoExporter)
	}
	return exp.Print(ctx)
}

// ExportPDF renders the current preview as a PDF
func (s *ReceiptService) ExportPDF(ctx context.Context, sess *Session) (*receipt.PDF, error) {
	exp := sess.Workspace().Exporter()
	if exp == nil {
		return nil, apperror.NewExportError("PDF export", errNoExporter)
	}
	return exp.ExportPDF(ctx)
}

// Status reports the configured printer and the workspace's receipt state
type Status struct {
	Printer receipt.PrinterStatus `json:"printer"`
	State   receipt.State         `json:"state"`
	Invoice string                `json:"invoice,omitempty"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus(ctx context.Context, sess *Session) *Status {
	st := &Status{
		Printer: receipt.PrinterStatus{Name: s.printer.Name(), Available: s.printer.Available(ctx)},
		State:   receipt.StateIdle,
	}
	if exp := sess.Workspace().Exporter(); exp != nil {
		st.State = exp.State()
		if cur := exp.Current(); cur != nil {
			st.Invoice = cur.View.InvoiceNumber
		}
	}
	return st
}

// TestPrint sends a sample receipt straight to the printer and returns its view
func (s *ReceiptService) TestPrint(ctx context.Context) (*receipt.View, error) {
	sample := &entity.Sale{
		InvoiceNumber: "TEST-0001",
		Items: []entity.SaleItem{
			{Product: entity.ProductRef{Name: "Test Item 1", SKU: "TST-001"}, Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Subtotal: decimal.NewFromInt(1000)},
			{Product: entity.ProductRef{Name: "Test Item 2", SKU: "TST-002"}, Quantity: 2, UnitPrice: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(1000)},
		},
		Subtotal:      decimal.NewFromInt(2000),
		Total:         decimal.NewFromInt(2000),
		PaymentMethod: enum.PaymentMethodCash,
		Cashier:       entity.UserRef{Name: "System"},
		CreatedAt:     time.Now(),
	}

	view, err := receipt.BuildView(sample, s.opts)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, receipt.FormatESCPOS(view, s.charWidth)); err != nil {
		return view, apperror.NewExportError("Test print", err)
	}
	return view, nil
}
