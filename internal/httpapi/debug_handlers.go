package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"leadscout-engine/internal/domain"
)

// DebugHandler exposes the pipeline's stateless half for demos and
// smoke tests: no auth, no persistence, permissive CORS.
type DebugHandler struct {
	Runner FindRunner
}

const (
	debugDefaultLocation = "Gainesville, FL"
	debugDefaultIndustry = "business"
	debugDefaultLimit    = 10
)

func (h DebugHandler) Find(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	location := q.Get("location")
	if location == "" {
		location = debugDefaultLocation
	}
	industry := q.Get("industry")
	if industry == "" {
		industry = debugDefaultIndustry
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = debugDefaultLimit
	}

	businesses, err := h.Runner.Discover(r.Context(), location, industry, limit)
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success":   false,
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if businesses == nil {
		businesses = []domain.Candidate{}
	}

	writeJSON(w, map[string]any{
		"success":    true,
		"query":      industry + " in " + location,
		"count":      len(businesses),
		"businesses": businesses,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
