package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/checkout"
)

func decodeCard(r io.Reader) (checkout.Card, error) {
	var card checkout.Card
	d := jx.Decode(r, 512)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "cardNumber":
			card.Number, err = d.Str()
		case "expiry":
			card.Expiry, err = d.Str()
		case "cvv":
			card.CVV, err = d.Str()
		case "cardholderName":
			card.Cardholder, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return card, err
}

// confirmCheckout opens the payment flow: it returns the total computed from
// the cart at confirmation time. Confirming with an empty cart is rejected,
// so the payment form never opens for nothing.
func (h *Handler) confirmCheckout(w http.ResponseWriter, r *http.Request) {
	total, err := h.checkout.Confirm(r.Context(), cartID(w, r))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusConflict, checkout.ErrEmptyCart.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("total")
		e.Str(cart.FormatPrice(total))
		e.ObjEnd()
	})
}

// submitPayment runs one payment attempt. Validation failures come back as
// 422 with the field's own message; a declined authorization as 402 with the
// generic failure message. Both leave the cart intact for a retry.
func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	card, err := decodeCard(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	o, err := h.checkout.Pay(r.Context(), cartID(w, r), card)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusUnprocessableEntity, vErr.Message)
		case errors.Is(err, checkout.ErrDeclined):
			writeError(w, http.StatusPaymentRequired, checkout.DeclinedMessage)
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusConflict, checkout.ErrEmptyCart.Error())
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("orderId")
		e.Str(o.ID)
		e.FieldStart("total")
		e.Str(cart.FormatPrice(o.Total))
		e.FieldStart("message")
		e.Str("Payment processed successfully! Thank you for your purchase.")
		e.ObjEnd()
	})
}
