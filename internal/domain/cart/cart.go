// Package cart implements the shopping cart core: line item merging keyed by
// product variant, quantity updates, and derived total computation.
package cart

import "github.com/shopspring/decimal"

// Key is the identity of a cart line: the same product in a different size or
// color is a distinct line.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

// LineItem is one entry in a cart. The JSON tags define the serialized
// snapshot stored on orders and persisted carts.
type LineItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"imageUrl"`
}

// Key returns the identity key of this line.
func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds an ordered list of line items and a derived total. The total is
// recomputed at the end of every mutation; it is never read from storage.
type Cart struct {
	Items []LineItem
	Total decimal.Decimal
}

// New builds a Cart from a rehydrated item list. The total is always derived
// from the items, so a stale persisted total can never be observed.
func New(items []LineItem) *Cart {
	c := &Cart{Items: items, Total: decimal.Zero}
	c.recompute()
	return c
}

// Add merges the item into an existing line with the same identity key,
// incrementing its quantity, or appends a new line. Quantity is taken as
// given; callers supply positive values.
func (c *Cart) Add(item LineItem) {
	defer c.recompute()

	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity replaces the quantity of the line matching the identity key,
// preserving its position. A quantity of zero or less removes the line.
// Missing lines are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int, size, color string) {
	if quantity <= 0 {
		c.Remove(productID, size, color)
		return
	}

	defer c.recompute()

	key := Key{ProductID: productID, Size: size, Color: color}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line matching the identity key, preserving the order of
// the remaining lines. Missing lines are a no-op.
func (c *Cart) Remove(productID, size, color string) {
	defer c.recompute()

	key := Key{ProductID: productID, Size: size, Color: color}
	kept := c.Items[:0]
	for _, li := range c.Items {
		if li.Key() != key {
			kept = append(kept, li)
		}
	}
	c.Items = kept
}

// Clear empties the cart. Used after a successful checkout.
func (c *Cart) Clear() {
	c.Items = nil
	c.Total = decimal.Zero
}

// Subtotal is a pure fold over the items: sum of unit price times quantity.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

func (c *Cart) recompute() {
	c.Total = Subtotal(c.Items)
}
