package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// CartCleaner clears a persisted cart after its order has been stored.
type CartCleaner interface {
	Clear(ctx context.Context, cartID string) error
}

// Service runs the checkout flow: validate, assemble, persist, then the
// best-effort notification side effect.
type Service struct {
	orders   Repository
	notifier Notifier
	carts    CartCleaner
}

// NewService creates a checkout Service. carts may be nil when checkout
// requests never reference a persisted cart.
func NewService(orders Repository, notifier Notifier, carts CartCleaner) *Service {
	return &Service{
		orders:   orders,
		notifier: notifier,
		carts:    carts,
	}
}

// PlaceOrder creates an order from the checkout request and returns the
// stored record. Persisting and notifying are two sequential steps with an
// accept-partial-success policy: a notification failure is logged and
// swallowed, leaving TelegramSent false on the stored order.
func (s *Service) PlaceOrder(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := Assemble(req)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.notify(ctx, o)
	s.clearCart(ctx, req.CartID)

	return o, nil
}

// notify delivers the order notification and, on success, flips the
// TelegramSent flag via a follow-up update. Every failure path only logs:
// the order stands as created either way.
func (s *Service) notify(ctx context.Context, o *Order) {
	lg := zctx.From(ctx)

	if err := s.notifier.OrderCreated(ctx, o); err != nil {
		lg.Warn("Order notification failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return
	}

	sent := true
	if _, err := s.orders.Update(ctx, o.ID, Patch{TelegramSent: &sent}); err != nil {
		lg.Warn("Failed to mark order as notified",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	o.TelegramSent = true
}

func (s *Service) clearCart(ctx context.Context, cartID string) {
	if s.carts == nil || cartID == "" {
		return
	}
	if err := s.carts.Clear(ctx, cartID); err != nil {
		zctx.From(ctx).Warn("Failed to clear cart after checkout",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
	}
}

// Get returns the stored order or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns all stored orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}
