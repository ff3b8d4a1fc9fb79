package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"
)

type ProfileHandler struct {
	Store store.Store
}

func (h ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r, h.Store)
	if !ok {
		return
	}
	prefs, err := h.Store.Preferences(r.Context(), userID)
	if err != nil {
		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}
	writeJSON(w, prefs)
}

func (h ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r, h.Store)
	if !ok {
		return
	}

	var prefs domain.SearchPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_argument", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(prefs.TargetLocation) == "" || strings.TrimSpace(prefs.TargetIndustry) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_preferences",
			"target location and industry are required")
		return
	}
	if prefs.LeadsPerSearch <= 0 {
		prefs.LeadsPerSearch = 20
	}

	if err := h.Store.SavePreferences(r.Context(), userID, prefs); err != nil {
		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}
	writeJSON(w, prefs)
}
