package httpapi

import "net/http"

// NewMux wires every handler; main() wraps the result in the
// middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Discovery RPC
	fh := FindHandler{Store: d.Store, Runner: d.Runner, FindStatus: d.FindStatus}
	mux.HandleFunc("/find", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Run,
	}))
	mux.HandleFunc("/find/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Status,
	}))

	// Leads
	lh := LeadsHandler{Store: d.Store, Hub: d.Hub}
	mux.HandleFunc("/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/leads/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath, // expects /leads/{id}
	}))

	// Profile (search preferences)
	ph := ProfileHandler{Store: d.Store}
	mux.HandleFunc("/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put,
	}))

	// Debug finder: handles its own CORS + OPTIONS
	dh := DebugHandler{Runner: d.Runner}
	mux.HandleFunc("/debug/find", dh.Find)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{Places: d.Places}
	mux.HandleFunc("/api/secrets/places", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetPlacesKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
