package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"leadscout-engine/internal/discover"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/store/sqlite"
)

type fakeRunner struct {
	sum      discover.Summary
	runErr   error
	cands    []domain.Candidate
	discErr  error
	lastUser string
	lastLoc  string
	lastInd  string
	lastLim  int
}

func (f *fakeRunner) Run(ctx context.Context, userID string) (discover.Summary, error) {
	f.lastUser = userID
	return f.sum, f.runErr
}

func (f *fakeRunner) Discover(ctx context.Context, location, industry string, limit int) ([]domain.Candidate, error) {
	f.lastLoc, f.lastInd, f.lastLim = location, industry, limit
	return f.cands, f.discErr
}

func testDeps(t *testing.T, runner FindRunner) (Deps, *sqlite.Backend) {
	t.Helper()
	b, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Close() })

	if err := b.EnsureUser(context.Background(), domain.User{
		ID:    "u-api",
		Token: "tok-api",
		Preferences: domain.SearchPreferences{
			TargetLocation: "Austin, TX",
			TargetIndustry: "cafe",
			LeadsPerSearch: 5,
		},
	}); err != nil {
		t.Fatal(err)
	}

	var st atomic.Value
	st.Store(FindStatus{})
	return Deps{
		Store:      b,
		Hub:        events.NewHub(),
		Runner:     runner,
		FindStatus: &st,
	}, b
}

func TestFindRequiresAuth(t *testing.T) {
	deps, _ := testDeps(t, &fakeRunner{})
	mux := NewMux(deps)

	req := httptest.NewRequest(http.MethodPost, "/find", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var e APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Error.Code != "unauthenticated" {
		t.Errorf("code = %q", e.Error.Code)
	}
}

func TestFindRunsForTokenOwner(t *testing.T) {
	fr := &fakeRunner{sum: discover.Summary{
		Success: true, SavedCount: 2, SkippedCount: 1, TotalFound: 3,
		Message: "Found 2 new leads, skipped 1 duplicates",
	}}
	deps, _ := testDeps(t, fr)
	mux := NewMux(deps)

	req := httptest.NewRequest(http.MethodPost, "/find", nil)
	req.Header.Set("Authorization", "Bearer tok-api")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if fr.lastUser != "u-api" {
		t.Errorf("runner got user %q, want u-api", fr.lastUser)
	}

	var sum discover.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if !sum.Success || sum.SavedCount != 2 || sum.TotalFound != 3 {
		t.Errorf("summary = %+v", sum)
	}

	st := deps.FindStatus.Load().(FindStatus)
	if st.Running || st.LastSaved != 2 || st.LastOkAt == "" {
		t.Errorf("find status = %+v", st)
	}
}

func TestFindMapsPipelineErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		code     string
	}{
		{discover.ErrProfileNotFound, http.StatusNotFound, "profile_not_found"},
		{discover.ErrInvalidPreferences, http.StatusBadRequest, "invalid_preferences"},
	}
	for _, tc := range cases {
		deps, _ := testDeps(t, &fakeRunner{runErr: tc.err})
		mux := NewMux(deps)

		req := httptest.NewRequest(http.MethodPost, "/find", nil)
		req.Header.Set("Authorization", "Bearer tok-api")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var e APIError
		_ = json.Unmarshal(rec.Body.Bytes(), &e)
		if e.Error.Code != tc.code {
			t.Errorf("%v: code = %q, want %q", tc.err, e.Error.Code, tc.code)
		}
	}
}

func TestDebugFindDefaults(t *testing.T) {
	fr := &fakeRunner{cands: []domain.Candidate{
		{PlaceID: "p1", BusinessName: "Debug Cafe", Category: "establishment", Source: "google_places"},
	}}
	deps, _ := testDeps(t, fr)
	mux := NewMux(deps)

	req := httptest.NewRequest(http.MethodGet, "/debug/find", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q, want *", got)
	}
	if fr.lastLoc != "Gainesville, FL" || fr.lastInd != "business" || fr.lastLim != 10 {
		t.Errorf("defaults not applied: loc=%q ind=%q lim=%d", fr.lastLoc, fr.lastInd, fr.lastLim)
	}

	var body struct {
		Success    bool               `json:"success"`
		Query      string             `json:"query"`
		Count      int                `json:"count"`
		Businesses []domain.Candidate `json:"businesses"`
		Timestamp  string             `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Count != 1 || body.Query != "business in Gainesville, FL" {
		t.Errorf("body = %+v", body)
	}
	if body.Timestamp == "" {
		t.Error("timestamp missing")
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339", body.Timestamp)
	}
}

func TestDebugFindQueryParams(t *testing.T) {
	fr := &fakeRunner{}
	deps, _ := testDeps(t, fr)
	mux := NewMux(deps)

	req := httptest.NewRequest(http.MethodGet, "/debug/find?location=Austin,TX&industry=cafe&limit=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if fr.lastLoc != "Austin,TX" || fr.lastInd != "cafe" || fr.lastLim != 5 {
		t.Errorf("params not forwarded: loc=%q ind=%q lim=%d", fr.lastLoc, fr.lastInd, fr.lastLim)
	}
}

func TestDebugFindPreflight(t *testing.T) {
	deps, _ := testDeps(t, &fakeRunner{})
	mux := NewMux(deps)

	req := httptest.NewRequest(http.MethodOptions, "/debug/find", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q, want *", got)
	}
}

func TestLeadsListScopedToToken(t *testing.T) {
	deps, b := testDeps(t, &fakeRunner{})
	mux := NewMux(deps)
	ctx := context.Background()

	mine := domain.Lead{
		ID: "l-mine", UserID: "u-api", BusinessName: "Mine",
		PlaceID: "pm1", Status: domain.StatusFound,
		Priority: domain.PriorityMedium, FoundAt: time.Now().UTC(),
	}
	other := domain.Lead{
		ID: "l-other", UserID: "someone-else", BusinessName: "Theirs",
		PlaceID: "po1", Status: domain.StatusFound,
		Priority: domain.PriorityMedium, FoundAt: time.Now().UTC(),
	}
	for _, l := range []domain.Lead{mine, other} {
		l := l
		if _, err := b.InsertLeadIfNew(ctx, &l); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer tok-api")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var leads []domain.Lead
	if err := json.Unmarshal(rec.Body.Bytes(), &leads); err != nil {
		t.Fatal(err)
	}
	if len(leads) != 1 || leads[0].ID != "l-mine" {
		t.Fatalf("leads = %+v, want only the caller's", leads)
	}

	// deleting another user's lead reads as not found
	dreq := httptest.NewRequest(http.MethodDelete, "/leads/l-other", nil)
	dreq.Header.Set("Authorization", "Bearer tok-api")
	drec := httptest.NewRecorder()
	mux.ServeHTTP(drec, dreq)
	if drec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", drec.Code)
	}
}
