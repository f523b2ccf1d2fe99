package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/skypants/storefront/internal/domain/cart"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// StatusPending is the only status this service ever assigns. Later lifecycle
// values are written by back-office tooling through Update.
const StatusPending = "pending"

// Order is a persisted checkout. Immutable after creation except for Status
// and TelegramSent.
type Order struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	City            string
	PostalCode      string
	Items           []cart.LineItem
	Total           decimal.Decimal
	Status          string
	TelegramSent    bool
	CreatedAt       time.Time
}

// Patch carries the only fields that may change after creation. Nil fields
// are left untouched.
type Patch struct {
	Status       *string
	TelegramSent *bool
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, id string, patch Patch) (*Order, error)
}

// Notifier delivers a best-effort notification for a freshly created order.
// Failures must be tolerated by callers; they never unwind the order.
type Notifier interface {
	OrderCreated(ctx context.Context, o *Order) error
}
