package service

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/cart"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/receipt"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// POSService runs the point-of-sale screen: catalog, cart and checkout
type POSService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
	logger       *zap.Logger
}

// NewPOSService creates a new POS service
func NewPOSService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	saleRepo repository.SaleRepository,
	logger *zap.Logger,
) *POSService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POSService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		saleRepo:     saleRepo,
		logger:       logger,
	}
}

// Catalog is what the POS screen sells from
type Catalog struct {
	Products    []entity.Product  `json:"products"`
	Categories  []entity.Category `json:"categories"`
	Adjustments []cart.Adjustment `json:"adjustments,omitempty"`
	LoadedAt    time.Time         `json:"loadedAt"`
}

// CartLineView is a cart line as shown to the cashier
type CartLineView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Available int             `json:"available"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartView is the cart with its totals
type CartView struct {
	Lines         []CartLineView    `json:"lines"`
	ItemCount     int               `json:"itemCount"`
	DiscountValue decimal.Decimal   `json:"discountValue"`
	DiscountType  enum.DiscountType `json:"discountType"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	Total         decimal.Decimal   `json:"total"`
}

// LoadCatalog fetches active products and categories together. Nothing is
// applied to the workspace when ctx ends before both arrive.
func (s *POSService) LoadCatalog(ctx context.Context, sess *Session) (*Catalog, error) {
	var (
		products   []entity.Product
		categories []entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		active := true
		list, _, err := s.productRepo.List(gctx, &repository.ProductFilterParams{IsActive: &active})
		products = list
		return err
	})
	g.Go(func() error {
		list, err := s.categoryRepo.List(gctx)
		categories = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.products = products
	ws.categories = categories
	ws.loadedAt = time.Now()
	adjustments := ws.cart.RefreshStock(products)

	return &Catalog{
		Products:    products,
		Categories:  categories,
		Adjustments: adjustments,
		LoadedAt:    ws.loadedAt,
	}, nil
}

// AddProduct adds one unit of productID, preferring the catalog snapshot
func (s *POSService) AddProduct(ctx context.Context, sess *Session, productID string) (*CartView, error) {
	ws := sess.Workspace()

	ws.mu.Lock()
	p, ok := ws.product(productID)
	ws.mu.Unlock()
	if !ok {
		fetched, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p = *fetched
	}
	return s.add(sess, p)
}

// AddByBarcode looks a scanned code up on the backend and adds the product
func (s *POSService) AddByBarcode(ctx context.Context, sess *Session, code string) (*CartView, error) {
	if code == "" {
		return nil, apperror.Validation("Barcode is required")
	}
	p, err := s.productRepo.GetByBarcode(ctx, code)
	if err != nil {
		if apperror.IsKind(err, apperror.KindRejected) && apperror.GetAppError(err).Code == 404 {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.add(sess, *p)
}

func (s *POSService) add(sess *Session, p entity.Product) (*CartView, error) {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if err := ws.cart.Add(p); err != nil {
		return nil, err
	}
	return viewOf(ws.cart), nil
}

// SetQuantity sets a line's quantity; zero or less removes it
func (s *POSService) SetQuantity(sess *Session, productID string, quantity int) (*CartView, error) {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if err := ws.cart.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	return viewOf(ws.cart), nil
}

// Remove drops a line from the cart
func (s *POSService) Remove(sess *Session, productID string) *CartView {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.cart.Remove(productID)
	return viewOf(ws.cart)
}

// Clear empties the cart and resets discount and customer
func (s *POSService) Clear(sess *Session) *CartView {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.cart.Clear()
	return viewOf(ws.cart)
}

// SetDiscount sets the cart discount value and kind
func (s *POSService) SetDiscount(sess *Session, value decimal.Decimal, kind enum.DiscountType) (*CartView, error) {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if err := ws.cart.SetDiscount(value, kind); err != nil {
		return nil, err
	}
	return viewOf(ws.cart), nil
}

// SetCustomer records the optional customer name and phone
func (s *POSService) SetCustomer(sess *Session, name, phone string) *CartView {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.cart.SetCustomer(name, phone)
	return viewOf(ws.cart)
}

// Cart returns the current cart
func (s *POSService) Cart(sess *Session) *CartView {
	ws := sess.Workspace()
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return viewOf(ws.cart)
}

// Checkout submits the cart. On success the sale becomes the workspace's last
// sale, its receipt preview is rendered and the catalog reloaded best-effort.
func (s *POSService) Checkout(ctx context.Context, sess *Session, method enum.PaymentMethod) (*entity.Sale, error) {
	ws := sess.Workspace()

	ws.mu.Lock()
	sale, err := ws.cart.Checkout(ctx, s.saleRepo, method)
	if err != nil {
		ws.mu.Unlock()
		return nil, err
	}
	ws.lastSale = sale
	ws.mu.Unlock()

	s.logger.Info("sale completed",
		zap.String("invoice", sale.InvoiceNumber),
		zap.String("total", sale.Total.String()),
		zap.String("cashier", sess.User().ID),
	)

	if ws.exporter != nil {
		switch _, err := ws.exporter.RenderPreview(sale); {
		case errors.Is(err, receipt.ErrBusy):
			s.logger.Info("receipt preview queued behind running export", zap.String("invoice", sale.InvoiceNumber))
		case err != nil:
			s.logger.Warn("receipt preview failed", zap.String("invoice", sale.InvoiceNumber), zap.Error(err))
		}
	}

	if _, err := s.LoadCatalog(ctx, sess); err != nil {
		s.logger.Warn("catalog reload after sale failed", zap.Error(err))
	}
	return sale, nil
}

func viewOf(c *cart.Cart) *CartView {
	lines := c.Lines()
	totals := c.Totals()
	value, kind := c.Discount()
	name, phone := c.Customer()

	v := &CartView{
		Lines:         make([]CartLineView, 0, len(lines)),
		DiscountValue: value,
		DiscountType:  kind,
		CustomerName:  name,
		CustomerPhone: phone,
		Subtotal:      totals.Subtotal,
		Discount:      totals.DiscountAmount,
		Total:         totals.Total,
	}
	for _, l := range lines {
		v.ItemCount += l.Quantity
		v.Lines = append(v.Lines, CartLineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			SKU:       l.Product.SKU,
			UnitPrice: l.Product.SellingPrice,
			Quantity:  l.Quantity,
			Available: l.Product.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return v
}
