package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skypants/storefront/internal/domain/cart"
)

const (
	loadCartSQL = `SELECT items FROM carts WHERE id = $1`

	saveCartSQL = `INSERT INTO carts (id, items, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()`

	deleteCartSQL = `DELETE FROM carts WHERE id = $1`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository persists session cart item lists as JSONB. Only the item
// list is stored; totals are derived by the cart package on load.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Load returns the persisted item list or cart.ErrNotFound.
func (r *CartRepository) Load(ctx context.Context, cartID string) ([]cart.LineItem, error) {
	var itemsJSON []byte
	err := r.pool.QueryRow(ctx, loadCartSQL, cartID).Scan(&itemsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrNotFound
		}
		return nil, errors.Wrapf(err, "load cart %q", cartID)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, errors.Wrapf(err, "unmarshal cart %q", cartID)
	}
	return items, nil
}

// Save upserts the item list for the given cart id.
func (r *CartRepository) Save(ctx context.Context, cartID string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "marshal cart %q", cartID)
	}

	if _, err := r.pool.Exec(ctx, saveCartSQL, cartID, itemsJSON); err != nil {
		return errors.Wrapf(err, "save cart %q", cartID)
	}
	return nil
}

// Delete removes the persisted cart. Deleting an absent cart is not an error.
func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	if _, err := r.pool.Exec(ctx, deleteCartSQL, cartID); err != nil {
		return errors.Wrapf(err, "delete cart %q", cartID)
	}
	return nil
}
