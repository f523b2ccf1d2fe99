package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/skypants/storefront/internal/domain/cart"
	"github.com/skypants/storefront/internal/domain/order"
)

// checkoutItem is one line of the cart snapshot submitted at checkout.
// Prices decode from decimal strings or numbers.
type checkoutItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"imageUrl"`
}

type checkoutRequest struct {
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone"`
	ShippingAddress string         `json:"shippingAddress"`
	City            string         `json:"city"`
	PostalCode      string         `json:"postalCode"`
	Items           []checkoutItem `json:"items"`
	CartID          string         `json:"cartId,omitempty"`
}

type orderResponse struct {
	ID              string             `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress string             `json:"shippingAddress"`
	City            string             `json:"city"`
	PostalCode      string             `json:"postalCode"`
	Items           []cartLineResponse `json:"items"`
	Total           string             `json:"total"`
	Status          string             `json:"status"`
	TelegramSent    bool               `json:"telegramSent"`
	CreatedAt       time.Time          `json:"createdAt"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]cartLineResponse, len(o.Items))
	for i, li := range o.Items {
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
	return orderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		PostalCode:      o.PostalCode,
		Items:           items,
		Total:           o.Total.StringFixed(2),
		Status:          o.Status,
		TelegramSent:    o.TelegramSent,
		CreatedAt:       o.CreatedAt,
	}
}

// PlaceOrder runs checkout: validation failures map to 400, anything
// unexpected to a generic 500.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]cart.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = cart.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			ImageURL:  it.ImageURL,
		}
	}

	o, err := h.orders.PlaceOrder(r.Context(), order.CheckoutRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Items:           items,
		CartID:          req.CartID,
	})
	if err != nil {
		var vErr *order.ValidationError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &vErr):
			writeError(w, r, http.StatusBadRequest, vErr.Error())
		default:
			writeInternal(w, r, err, "failed to create order")
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, toOrderResponse(o))
}

// ListOrders returns all orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeInternal(w, r, err, "failed to fetch orders")
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	writeJSON(w, r, http.StatusOK, out)
}

// GetOrder returns a single order by ID.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "order not found")
			return
		}
		writeInternal(w, r, err, "failed to fetch order")
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(o))
}
