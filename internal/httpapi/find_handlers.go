package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"leadscout-engine/internal/store"
)

type FindHandler struct {
	Store      store.Store
	Runner     FindRunner
	FindStatus *atomic.Value // httpapi.FindStatus
}

// Run is the authenticated RPC entry point: no parameters, preferences
// come from the caller's stored profile. The run is synchronous; the
// caller gets the full summary or one descriptive error.
func (h FindHandler) Run(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r, h.Store)
	if !ok {
		return
	}

	st, _ := h.FindStatus.Load().(FindStatus)
	h.FindStatus.Store(FindStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	sum, err := h.Runner.Run(r.Context(), userID)

	now := time.Now().Format(time.RFC3339)
	next, _ := h.FindStatus.Load().(FindStatus)
	next.Running = false
	next.LastRunAt = now
	if err != nil {
		next.LastError = err.Error()
		h.FindStatus.Store(next)

		status, code := classify(err)
		WriteError(w, r, status, code, err.Error())
		return
	}
	next.LastError = ""
	next.LastOkAt = now
	next.LastSaved = sum.SavedCount
	h.FindStatus.Store(next)

	writeJSON(w, sum)
}

func (h FindHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.FindStatus.Load().(FindStatus)
	writeJSON(w, st)
}
