package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/skypants/storefront/internal/domain/cart"
	"github.com/skypants/storefront/internal/domain/product"
)

// cartLineResponse is one line of a cart as seen by clients.
type cartLineResponse struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	ImageURL  string `json:"imageUrl"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total string             `json:"total"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	items := make([]cartLineResponse, len(c.Items))
	for i, li := range c.Items {
		items[i] = cartLineResponse{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.UnitPrice.StringFixed(2),
			Quantity:  li.Quantity,
			Size:      li.Size,
			Color:     li.Color,
			ImageURL:  li.ImageURL,
			Subtotal:  li.Subtotal().StringFixed(2),
		}
	}
	return cartResponse{Items: items, Total: c.Total.StringFixed(2)}
}

// addItemRequest references the catalog; price, name, and image come from
// the stored product, never from the client.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type updateItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// GetCart returns the rehydrated cart with a freshly computed total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeInternal(w, r, err, "failed to fetch cart")
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(c))
}

// AddCartItem resolves the product and merges it into the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		writeError(w, r, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternal(w, r, err, "failed to fetch product")
		return
	}

	c, err := h.carts.AddItem(r.Context(), r.PathValue("cartID"), cart.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		ImageURL:  p.ImageURL,
	})
	if err != nil {
		writeInternal(w, r, err, "failed to update cart")
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(c))
}

// UpdateCartItem sets a line's quantity in place; zero or negative removes
// the line. Unknown lines are a no-op.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), r.PathValue("cartID"),
		req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		writeInternal(w, r, err, "failed to update cart")
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(c))
}

// RemoveCartItem deletes the line identified by query parameters.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID := q.Get("productId")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}

	c, err := h.carts.RemoveItem(r.Context(), r.PathValue("cartID"),
		productID, q.Get("size"), q.Get("color"))
	if err != nil {
		writeInternal(w, r, err, "failed to update cart")
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(c))
}

// ClearCart drops the persisted cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), r.PathValue("cartID")); err != nil {
		writeInternal(w, r, err, "failed to clear cart")
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(cart.New(nil)))
}
