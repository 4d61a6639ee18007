package cart

import (
	"context"
	"fmt"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
)

// SaleCreator submits a sale to the backend
type SaleCreator interface {
	Create(ctx context.Context, req *entity.CreateSaleRequest) (*entity.Sale, error)
}

// Local checkout failures. Neither reaches the backend.
var (
	ErrEmptyCart        = apperror.Validation("Cart is empty")
	ErrNonPositiveTotal = apperror.Validation("Total must be greater than 0")
)

// SaleRequest validates the cart and builds the submission. Only product ids and
// quantities are sent; the backend prices the sale from its own records.
func (c *Cart) SaleRequest(method enum.PaymentMethod) (*entity.CreateSaleRequest, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	totals := c.Totals()
	if !totals.Total.IsPositive() {
		return nil, ErrNonPositiveTotal
	}
	if !method.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Invalid payment method %q", method))
	}

	items := make([]entity.SaleLine, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, entity.SaleLine{ProductID: l.Product.ID, Quantity: l.Quantity})
	}

	return &entity.CreateSaleRequest{
		Items:         items,
		Discount:      entity.Number(totals.DiscountAmount),
		DiscountType:  c.discountType,
		PaymentMethod: method,
		CustomerName:  c.customerName,
		CustomerPhone: c.customerPhone,
	}, nil
}

// Checkout submits the cart. On success the cart is cleared and the created sale
// returned; on a backend rejection the cart is left as it was.
func (c *Cart) Checkout(ctx context.Context, creator SaleCreator, method enum.PaymentMethod) (*entity.Sale, error) {
	req, err := c.SaleRequest(method)
	if err != nil {
		return nil, err
	}

	sale, err := creator.Create(ctx, req)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewInternalError("Failed to complete sale", err)
	}
	if sale == nil {
		return nil, apperror.NewInternalError("Failed to complete sale", nil)
	}

	c.Clear()
	return sale, nil
}
