// Package handler exposes the storefront HTTP API: catalog reads, session
// cart mutations, and checkout.
package handler

import (
	"net/http"

	"github.com/skypants/storefront/internal/domain/cart"
	"github.com/skypants/storefront/internal/domain/order"
	"github.com/skypants/storefront/internal/domain/product"
)

// Handler serves the storefront API, delegating business logic to the cart
// store, checkout service, and product repository.
type Handler struct {
	products product.Repository
	carts    *cart.Store
	orders   *order.Service
}

// New constructs a Handler with the required domain dependencies.
func New(products product.Repository, carts *cart.Store, orders *order.Service) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// Register mounts all API routes on the mux using method patterns.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/products/category/{category}", h.ListProductsByCategory)

	mux.HandleFunc("GET /api/carts/{cartID}", h.GetCart)
	mux.HandleFunc("POST /api/carts/{cartID}/items", h.AddCartItem)
	mux.HandleFunc("PUT /api/carts/{cartID}/items", h.UpdateCartItem)
	mux.HandleFunc("DELETE /api/carts/{cartID}/items", h.RemoveCartItem)
	mux.HandleFunc("DELETE /api/carts/{cartID}", h.ClearCart)

	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
}
