package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"leadscout-engine/internal/store"
)

// bearerToken pulls the credential from Authorization: Bearer or the
// X-API-Token fallback header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get("X-API-Token"))
}

// authUserID resolves the request's token to a user id, or writes a 401
// and returns ok=false.
func authUserID(w http.ResponseWriter, r *http.Request, s store.Store) (string, bool) {
	tok := bearerToken(r)
	if tok == "" {
		WriteError(w, r, http.StatusUnauthorized, "unauthenticated", "user must be authenticated")
		return "", false
	}
	id, err := s.UserIDForToken(r.Context(), tok)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusUnauthorized, "unauthenticated", "unknown token")
		return "", false
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return "", false
	}
	return id, true
}
