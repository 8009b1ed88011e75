//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestCart_StartsEmpty(t *testing.T) {
	s := newSession(t)

	resp := s.get("/api/cart")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	view := decodeJSON[cartViewResponse](t, resp)
	if !view.Empty {
		t.Error("expected empty cart")
	}
	if view.Message != "Your cart is empty." {
		t.Errorf("unexpected message %q", view.Message)
	}
	if view.CheckoutEnabled {
		t.Error("checkout should be disabled for an empty cart")
	}
}

func TestCart_AddAndAccumulate(t *testing.T) {
	s := newSession(t)

	resp := s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first add: expected 200, got %d", resp.StatusCode)
	}

	resp = s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d", resp.StatusCode)
	}

	view := decodeJSON[cartViewResponse](t, resp)
	if len(view.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(view.Rows))
	}
	if view.Rows[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", view.Rows[0].Quantity)
	}
	if view.Total != "$19.98" {
		t.Errorf("total: got %q, want $19.98", view.Total)
	}
	if view.Count != 2 {
		t.Errorf("count: got %d, want 2", view.Count)
	}
}

func TestCart_RemoveLine(t *testing.T) {
	s := newSession(t)
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"}).Body.Close()
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "dinner-plate"}).Body.Close()

	resp := s.do(http.MethodDelete, "/api/cart/items/0", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	view := decodeJSON[cartViewResponse](t, resp)
	if len(view.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(view.Rows))
	}
	if view.Rows[0].Name != "Dinner Plate" {
		t.Errorf("remaining row: got %q, want Dinner Plate", view.Rows[0].Name)
	}
}

func TestCart_SurvivesAcrossRequests(t *testing.T) {
	s := newSession(t)
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "teapot"}).Body.Close()

	// A fresh GET in the same session sees the persisted cart.
	resp := s.get("/api/cart")
	defer resp.Body.Close()

	view := decodeJSON[cartViewResponse](t, resp)
	if view.Count != 1 {
		t.Errorf("count: got %d, want 1", view.Count)
	}

	// A different session has its own empty cart.
	other := newSession(t)
	resp2 := other.get("/api/cart")
	defer resp2.Body.Close()

	if view2 := decodeJSON[cartViewResponse](t, resp2); !view2.Empty {
		t.Error("new session should start with an empty cart")
	}
}

func TestCart_UnknownProduct(t *testing.T) {
	s := newSession(t)

	resp := s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "ghost"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
