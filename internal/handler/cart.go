package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
)

// addItemRequest is the POST /api/cart/items body. Either a productId
// resolved against the catalog, or the name/price/image triple carried by
// the storefront markup.
type addItemRequest struct {
	ProductID string
	Name      string
	Price     string
	Image     string
}

func decodeAddItemRequest(r io.Reader) (addItemRequest, error) {
	var req addItemRequest
	d := jx.Decode(r, 512)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			req.ProductID, err = d.Str()
		case "name":
			req.Name, err = d.Str()
		case "price":
			req.Price, err = d.Str()
		case "image":
			req.Image, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return req, err
}

// encodeCartView writes the rendered cart display model plus the badge count.
func encodeCartView(e *jx.Encoder, c cart.Cart) {
	v := cart.Render(c)

	e.ObjStart()
	e.FieldStart("empty")
	e.Bool(v.Empty)
	if v.Empty {
		e.FieldStart("message")
		e.Str(v.Message)
	}
	e.FieldStart("rows")
	e.ArrStart()
	for _, row := range v.Rows {
		e.ObjStart()
		e.FieldStart("index")
		e.Int(row.Index)
		e.FieldStart("name")
		e.Str(row.Name)
		e.FieldStart("image")
		e.Str(row.ImageURL)
		e.FieldStart("unitPrice")
		e.Str(row.UnitPrice)
		e.FieldStart("quantity")
		e.Int(row.Quantity)
		e.FieldStart("lineTotal")
		e.Str(row.LineTotal)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("total")
	e.Str(v.Total)
	e.FieldStart("count")
	e.Int(c.Count)
	e.FieldStart("checkoutEnabled")
	e.Bool(v.CheckoutEnabled)
	e.ObjEnd()
}

// getCart renders the current cart. The view is rebuilt from the store on
// every call.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), cartID(w, r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCartView(e, c) })
}

// addItem adds one unit of a product to the cart and returns the updated
// view.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddItemRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ctx := r.Context()
	id := cartID(w, r)

	var c cart.Cart
	switch {
	case req.ProductID != "":
		p, err := h.products.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			internalError(w, r, err)
			return
		}
		c, err = h.carts.AddPriced(ctx, id, p.Name, p.Price, p.ImageURL)
		if err != nil {
			internalError(w, r, err)
			return
		}
	case req.Name != "":
		c, err = h.carts.Add(ctx, id, req.Name, req.Price, req.Image)
		if err != nil {
			if errors.Is(err, cart.ErrInvalidPrice) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			internalError(w, r, err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "productId or name is required")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCartView(e, c) })
}

// removeItem deletes the whole line at the given position. An out-of-range
// index is a no-op, never a fault: the unchanged view is returned.
func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	c, err := h.carts.Remove(r.Context(), cartID(w, r), index)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCartView(e, c) })
}
