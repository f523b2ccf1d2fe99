// Package postgres implements the domain repositories on top of pgx.
package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/skypants/storefront/db"
	"github.com/skypants/storefront/internal/domain/product"
)

// NewPool creates a pgxpool.Pool configured with shopspring/decimal support
// for NUMERIC columns.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database config")
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}
	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}

// seedProduct mirrors the embedded seed JSON; prices and ratings are decimal
// strings there.
type seedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Gender      string          `json:"gender"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	ImageURL    string          `json:"imageUrl"`
	Images      []string        `json:"images"`
	Inventory   int             `json:"inventory"`
	Rating      decimal.Decimal `json:"rating"`
}

// SeedProducts inserts the embedded catalog when the products table is
// empty. Running it on every startup is safe: a non-empty table makes it a
// no-op, so restarts never duplicate the catalog.
func SeedProducts(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return errors.Wrap(err, "count products")
	}
	if count > 0 {
		return nil
	}

	var seed []seedProduct
	if err := json.Unmarshal(db.SeedProducts, &seed); err != nil {
		return errors.Wrap(err, "parse seed products")
	}

	repo := NewProductRepository(pool)
	for _, sp := range seed {
		p := &product.Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Description: sp.Description,
			Price:       sp.Price,
			Category:    sp.Category,
			Gender:      sp.Gender,
			Sizes:       sp.Sizes,
			Colors:      sp.Colors,
			ImageURL:    sp.ImageURL,
			Images:      sp.Images,
			InStock:     true,
			Inventory:   sp.Inventory,
			Rating:      sp.Rating,
		}
		if err := repo.Upsert(ctx, p); err != nil {
			return errors.Wrapf(err, "seed product %s", sp.ID)
		}
	}
	return nil
}
