package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Repository implementations when no cart exists
// for the given id. The Store treats it as an empty cart.
var ErrNotFound = errors.New("cart not found")

// Repository persists the raw item list of a cart. Only the items are
// durable: derived values are recomputed on every load.
type Repository interface {
	Load(ctx context.Context, cartID string) ([]LineItem, error)
	Save(ctx context.Context, cartID string, items []LineItem) error
	Delete(ctx context.Context, cartID string) error
}

// Store is the injectable session cart. Each operation rehydrates the
// persisted item list, applies one mutation, and persists the item list
// again. Totals returned to callers are always freshly derived.
type Store struct {
	repo Repository
}

// NewStore creates a Store backed by the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Get rehydrates the cart for the given id. A missing cart is an empty cart.
func (s *Store) Get(ctx context.Context, cartID string) (*Cart, error) {
	items, err := s.repo.Load(ctx, cartID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return New(nil), nil
		}
		return nil, errors.Wrap(err, "load cart")
	}
	return New(items), nil
}

// AddItem merges the item into the cart and persists the result.
func (s *Store) AddItem(ctx context.Context, cartID string, item LineItem) (*Cart, error) {
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.Add(item)
	})
}

// UpdateQuantity sets the quantity of the matching line; zero or negative
// quantities remove it.
func (s *Store) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int, size, color string) (*Cart, error) {
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.UpdateQuantity(productID, quantity, size, color)
	})
}

// RemoveItem deletes the matching line.
func (s *Store) RemoveItem(ctx context.Context, cartID, productID, size, color string) (*Cart, error) {
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.Remove(productID, size, color)
	})
}

// Clear drops the persisted cart entirely.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.repo.Delete(ctx, cartID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrap(err, "delete cart")
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, cartID string, fn func(*Cart)) (*Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	fn(c)

	if err := s.repo.Save(ctx, cartID, c.Items); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}
