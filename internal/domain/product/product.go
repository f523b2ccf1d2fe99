package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Gender      string
	Sizes       []string
	Colors      []string
	ImageURL    string
	Images      []string
	InStock     bool
	Inventory   int
	Rating      decimal.Decimal
	CreatedAt   time.Time
}

// Repository defines catalog operations. Upsert exists for seeding only;
// nothing in the order path ever writes to the catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Upsert(ctx context.Context, p *Product) error
}
