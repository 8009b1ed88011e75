package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// cartCookie carries the session's cart ID, standing in for the original
// per-browser storage scope.
const cartCookie = "cart_id"

// cartID returns the request's cart ID, minting and setting a fresh one when
// the cookie is absent or not a valid UUID.
func cartID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cartCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
