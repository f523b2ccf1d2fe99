//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 8 {
		t.Fatalf("expected 8 products, got %d", len(products))
	}
}

func TestListProducts_Fields(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)

	var formal *productResponse
	for i := range products {
		if products[i].ID == "classic-formal-pants" {
			formal = &products[i]
			break
		}
	}

	if formal == nil {
		t.Fatal("product 'classic-formal-pants' not found")
	}
	if formal.Name != "Classic Formal Pants" {
		t.Errorf("name: got %q, want %q", formal.Name, "Classic Formal Pants")
	}
	if formal.Price != "89.99" {
		t.Errorf("price: got %q, want %q", formal.Price, "89.99")
	}
	if formal.Category != "formal" {
		t.Errorf("category: got %q, want %q", formal.Category, "formal")
	}
	if formal.Gender != "men" {
		t.Errorf("gender: got %q, want %q", formal.Gender, "men")
	}
	if len(formal.Sizes) != 6 {
		t.Errorf("sizes: got %d entries, want 6", len(formal.Sizes))
	}
	if len(formal.Colors) != 3 {
		t.Errorf("colors: got %d entries, want 3", len(formal.Colors))
	}
	if formal.ImageURL == "" {
		t.Error("imageUrl is empty")
	}
	if !formal.InStock {
		t.Error("expected product to be in stock")
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/api/products/khaki-chinos")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	product := decodeJSON[productResponse](t, resp)
	if product.ID != "khaki-chinos" {
		t.Errorf("id: got %q, want %q", product.ID, "khaki-chinos")
	}
	if product.Name != "Khaki Chinos" {
		t.Errorf("name: got %q, want %q", product.Name, "Khaki Chinos")
	}
	if product.Price != "69.99" {
		t.Errorf("price: got %q, want %q", product.Price, "69.99")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/api/products/no-such-product")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Code != http.StatusNotFound {
		t.Errorf("code: got %d, want 404", body.Code)
	}
	if body.Message == "" {
		t.Error("message is empty")
	}
}

func TestListProductsByCategory(t *testing.T) {
	resp := doGet(t, "/api/products/category/formal")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 4 {
		t.Fatalf("expected 4 formal products, got %d", len(products))
	}
	for _, p := range products {
		if p.Category != "formal" {
			t.Errorf("product %s: category %q, want %q", p.ID, p.Category, "formal")
		}
	}
}

func TestListProductsByCategory_Empty(t *testing.T) {
	resp := doGet(t, "/api/products/category/swimwear")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 0 {
		t.Fatalf("expected empty list, got %d products", len(products))
	}
}
