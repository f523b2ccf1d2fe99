package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skypants/storefront/internal/domain/cart"
)

// Flat pricing rules: free shipping above a subtotal threshold, a single tax
// rate with no jurisdiction logic.
var (
	freeShippingThreshold = decimal.RequireFromString("75.00")
	shippingFlatRate      = decimal.RequireFromString("9.99")
	taxRate               = decimal.RequireFromString("0.08")
)

// ErrEmptyCart rejects a checkout submitted with no items, before any
// persistence or network call happens.
var ErrEmptyCart = fmt.Errorf("cart is empty")

// ValidationError reports a missing or malformed checkout field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// CheckoutRequest holds the customer and shipping form fields plus the cart
// snapshot taken at submit time. CartID is optional; when present, the
// persisted cart is cleared after the order is stored.
type CheckoutRequest struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	City            string
	PostalCode      string
	Items           []cart.LineItem
	CartID          string
}

// Validate checks the request against the fixed order schema. The first
// missing field wins; items are checked before any field so an empty cart is
// always reported as such.
func (r *CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyCart
	}

	fields := []struct {
		name  string
		value string
	}{
		{"customerName", r.CustomerName},
		{"customerEmail", r.CustomerEmail},
		{"customerPhone", r.CustomerPhone},
		{"shippingAddress", r.ShippingAddress},
		{"city", r.City},
		{"postalCode", r.PostalCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}

	if !strings.Contains(r.CustomerEmail, "@") {
		return &ValidationError{Field: "customerEmail"}
	}
	return nil
}

// Totals breaks the order amount into its parts, each rounded to cents.
type Totals struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals derives shipping, tax, and the grand total from a subtotal.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	shipping := shippingFlatRate
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal:   subtotal.Round(2),
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax).Round(2),
	}
}

// Assemble builds the fixed-schema order record from a validated checkout
// request: fresh id, pending status, notification flag down, and the item
// snapshot carried over verbatim.
func Assemble(req CheckoutRequest) *Order {
	totals := ComputeTotals(cart.Subtotal(req.Items))

	return &Order{
		ID:              uuid.New().String(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Items:           req.Items,
		Total:           totals.GrandTotal,
		Status:          StatusPending,
		TelegramSent:    false,
		CreatedAt:       time.Now().UTC(),
	}
}
