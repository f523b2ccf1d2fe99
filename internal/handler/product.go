package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/skypants/storefront/internal/domain/product"
)

// productResponse mirrors the catalog schema; price and rating are
// 2-decimal / 1-decimal strings.
type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Gender      string    `json:"gender"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	ImageURL    string    `json:"imageUrl"`
	Images      []string  `json:"images"`
	InStock     bool      `json:"inStock"`
	Inventory   int       `json:"inventory"`
	Rating      string    `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Gender:      p.Gender,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		ImageURL:    p.ImageURL,
		Images:      p.Images,
		InStock:     p.InStock,
		Inventory:   p.Inventory,
		Rating:      p.Rating.StringFixed(1),
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(products []product.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// ListProducts returns every product in the catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeInternal(w, r, err, "failed to fetch products")
		return
	}
	writeJSON(w, r, http.StatusOK, toProductResponses(products))
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternal(w, r, err, "failed to fetch product")
		return
	}
	writeJSON(w, r, http.StatusOK, toProductResponse(*p))
}

// ListProductsByCategory returns the products in one category. An unknown
// category is an empty list, not an error.
func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		writeInternal(w, r, err, "failed to fetch products")
		return
	}
	writeJSON(w, r, http.StatusOK, toProductResponses(products))
}
