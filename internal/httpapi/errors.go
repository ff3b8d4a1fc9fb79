package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadscout-engine/internal/discover"
	"leadscout-engine/internal/places"
	"leadscout-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// classify maps pipeline errors onto HTTP status + error code.
func classify(err error) (status int, code string) {
	switch {
	case errors.Is(err, discover.ErrProfileNotFound):
		return http.StatusNotFound, "profile_not_found"
	case errors.Is(err, discover.ErrInvalidPreferences):
		return http.StatusBadRequest, "invalid_preferences"
	case errors.Is(err, places.ErrLocationNotResolvable):
		return http.StatusBadRequest, "location_not_resolvable"
	case errors.Is(err, places.ErrUpstream):
		return http.StatusBadGateway, "upstream_error"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
