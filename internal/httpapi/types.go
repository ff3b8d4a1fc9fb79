package httpapi

// FindStatus mirrors the most recent discovery run for GET /find/status.
type FindStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastSaved int    `json:"last_saved"`
	Running   bool   `json:"running"`
}
