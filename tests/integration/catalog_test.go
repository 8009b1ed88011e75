//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestProducts_List(t *testing.T) {
	s := newSession(t)

	resp := s.get("/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	list := decodeJSON[productListResponse](t, resp)
	if len(list.Products) != 6 {
		t.Fatalf("expected 6 products, got %d", len(list.Products))
	}
	for _, p := range list.Products {
		if !strings.HasPrefix(p.Price, "$") {
			t.Errorf("product %s price %q missing currency prefix", p.ID, p.Price)
		}
	}
}

func TestProducts_Filter(t *testing.T) {
	s := newSession(t)

	resp := s.get("/api/products?query=mug")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	list := decodeJSON[productListResponse](t, resp)
	if len(list.Products) != 1 {
		t.Fatalf("expected 1 match, got %d", len(list.Products))
	}
	if list.Products[0].Name != "Classic Mug" {
		t.Errorf("match: got %q, want Classic Mug", list.Products[0].Name)
	}
}

func TestProducts_FilterNoResults(t *testing.T) {
	s := newSession(t)

	resp := s.get("/api/products?query=zzz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if !strings.Contains(body.Message, "zzz") {
		t.Errorf("message %q should echo the query", body.Message)
	}
}

func TestProducts_GetByID(t *testing.T) {
	s := newSession(t)

	resp := s.get("/api/products/teapot")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if p.Name != "Teapot" || p.Price != "$24.99" {
		t.Errorf("got %q/%q, want Teapot/$24.99", p.Name, p.Price)
	}
}
