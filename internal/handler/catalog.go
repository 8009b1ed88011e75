package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront/internal/domain/catalog"
)

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("price")
	e.Str(p.DisplayPrice())
	e.FieldStart("image")
	e.Str(p.ImageURL)
	e.ObjEnd()
}

// listProducts returns the catalog, optionally filtered by the query
// parameter. A query matching nothing yields 404 with the no-results
// message so the storefront can surface it.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.products.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	res, err := catalog.Filter(entries, r.URL.Query().Get("query"))
	if err != nil {
		var nrErr *catalog.NoResultsError
		if errors.As(err, &nrErr) {
			writeError(w, http.StatusNotFound, nrErr.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("products")
		e.ArrStart()
		for _, p := range res.Visible {
			encodeProduct(e, p)
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

// getProduct serves the product detail view.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeProduct(e, *p) })
}
