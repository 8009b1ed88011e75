//go:build integration

package integration

import (
	"net/http"
	"testing"
)

// The compose file pins the gateway to a 100ms delay and a success rate of 1,
// so payment outcomes here are deterministic.

var validCard = map[string]string{
	"cardNumber":     "4111 1111 1111 1111",
	"expiry":         "12/29",
	"cvv":            "123",
	"cardholderName": "Ada Lovelace",
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	s := newSession(t)

	resp := s.do(http.MethodPost, "/api/cart/checkout", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCheckout_ConfirmReturnsTotal(t *testing.T) {
	s := newSession(t)
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "soup-bowl"}).Body.Close()

	resp := s.do(http.MethodPost, "/api/cart/checkout", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[map[string]string](t, resp)
	if body["total"] != "$7.25" {
		t.Errorf("total: got %q, want $7.25", body["total"])
	}
}

func TestCheckout_PaymentClearsCart(t *testing.T) {
	s := newSession(t)
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"}).Body.Close()
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"}).Body.Close()

	resp := s.do(http.MethodPost, "/api/cart/payment", validCard)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	payment := decodeJSON[paymentResponse](t, resp)
	if payment.OrderID == "" {
		t.Error("expected an order id")
	}
	if payment.Total != "$19.98" {
		t.Errorf("total: got %q, want $19.98", payment.Total)
	}

	after := s.get("/api/cart")
	defer after.Body.Close()
	if view := decodeJSON[cartViewResponse](t, after); !view.Empty || view.Count != 0 {
		t.Errorf("cart not cleared: empty=%v count=%d", view.Empty, view.Count)
	}
}

func TestCheckout_ValidationMessage(t *testing.T) {
	s := newSession(t)
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"productId": "classic-mug"}).Body.Close()

	bad := map[string]string{
		"cardNumber":     "42",
		"expiry":         "12/29",
		"cvv":            "123",
		"cardholderName": "Ada Lovelace",
	}
	resp := s.do(http.MethodPost, "/api/cart/payment", bad)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Message != "Please enter a valid card number." {
		t.Errorf("message: got %q", body.Message)
	}

	// A rejected submission leaves the cart intact.
	after := s.get("/api/cart")
	defer after.Body.Close()
	if view := decodeJSON[cartViewResponse](t, after); view.Count != 1 {
		t.Errorf("cart count: got %d, want 1", view.Count)
	}
}
