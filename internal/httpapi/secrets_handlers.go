package httpapi

import (
	"encoding/json"
	"net/http"

	"leadscout-engine/internal/places"
	"leadscout-engine/internal/secrets"
)

type SecretsHandler struct {
	Places *places.Client
}

type setPlacesKeyReq struct {
	Key string `json:"key"`
}

// SetPlacesKey stores the maps API key in the OS keychain and hands it
// to the live client, so the next pipeline run picks it up.
func (h SecretsHandler) SetPlacesKey(w http.ResponseWriter, r *http.Request) {
	var req setPlacesKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := secrets.SetPlacesAPIKey(req.Key); err != nil {
		http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
		return
	}
	if h.Places != nil {
		h.Places.SetAPIKey(req.Key)
	}
	w.WriteHeader(http.StatusNoContent)
}
