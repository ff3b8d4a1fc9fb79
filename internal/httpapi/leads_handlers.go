package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"leadscout-engine/internal/events"
	"leadscout-engine/internal/store"
)

type LeadsHandler struct {
	Store store.Store
	Hub   *events.Hub
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r, h.Store)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	leads, err := h.Store.ListLeads(r.Context(), store.ListLeadsOpts{
		UserID: userID,
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
		Limit:  limit,
	})
	if err != nil {
		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}
	writeJSON(w, leads)
}

// DeleteByPath expects /leads/{id}.
func (h LeadsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r, h.Store)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/leads/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_argument", "invalid lead id")
		return
	}

	// leads belong to their finder; don't let one token delete another
	// user's records
	l, err := h.Store.GetLead(r.Context(), id)
	if err != nil {
		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}
	if l.UserID != userID {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such lead")
		return
	}

	if err := h.Store.DeleteLead(r.Context(), id); err != nil {
		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
