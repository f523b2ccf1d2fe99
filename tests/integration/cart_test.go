//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func newCartID() string {
	return "it-" + uuid.New().String()
}

func TestCart_AddAndMerge(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1, Size: "32", Color: "khaki",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first add: expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 2, Size: "32", Color: "khaki",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", cart.Items[0].Quantity)
	}
	if cart.Total != "209.97" {
		t.Errorf("total: got %q, want %q", cart.Total, "209.97")
	}
}

func TestCart_DistinctVariants(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1, Size: "30", Color: "khaki",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1, Size: "32", Color: "olive",
	})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(cart.Items))
	}
}

func TestCart_ServerSidePricing(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "classic-formal-pants", Quantity: 1,
	})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	// Price and name come from the catalog, never from the client.
	if cart.Items[0].Price != "89.99" {
		t.Errorf("price: got %q, want %q", cart.Items[0].Price, "89.99")
	}
	if cart.Items[0].Name != "Classic Formal Pants" {
		t.Errorf("name: got %q, want %q", cart.Items[0].Name, "Classic Formal Pants")
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 3, Size: "32",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1, Size: "32",
	})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected single line with quantity 1, got %+v", cart.Items)
	}
	if cart.Total != "69.99" {
		t.Errorf("total: got %q, want %q", cart.Total, "69.99")
	}
}

func TestCart_UpdateToZeroRemoves(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 2, Size: "32",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 0, Size: "32",
	})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Items))
	}
	if cart.Total != "0.00" {
		t.Errorf("total: got %q, want %q", cart.Total, "0.00")
	}
}

func TestCart_RemoveItem(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1, Size: "32", Color: "khaki",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, base+"/items?productId=khaki-chinos&size=32&color=khaki", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Items))
	}
}

func TestCart_Clear(t *testing.T) {
	cartID := newCartID()
	base := fmt.Sprintf("/api/carts/%s", cartID)

	resp := doJSON(t, http.MethodPost, base+"/items", cartItemRequest{
		ProductID: "khaki-chinos", Quantity: 1,
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, base, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", resp.StatusCode)
	}

	resp = doGet(t, base)
	defer resp.Body.Close()
	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %d lines", len(cart.Items))
	}
}

func TestCart_GetMissingIsEmpty(t *testing.T) {
	resp := doGet(t, "/api/carts/"+newCartID())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Items))
	}
	if cart.Total != "0.00" {
		t.Errorf("total: got %q, want %q", cart.Total, "0.00")
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/api/carts/"+newCartID()+"/items", cartItemRequest{
		ProductID: "no-such-product", Quantity: 1,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
