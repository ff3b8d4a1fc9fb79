package analyze

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store/sqlite"
)

const oldSite = `<!DOCTYPE html>
<html><head><title>Joe's Plumbing</title>
<meta name="generator" content="WordPress 4.9">
</head><body>
<footer>&copy; 2015 Joe's Plumbing</footer>
</body></html>`

const freshSite = `<!DOCTYPE html>
<html><head><title>Fresh Co</title>
<meta name="viewport" content="width=device-width">
</head><body><footer>© 2026 Fresh Co</footer></body></html>`

func TestProbeFetchSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oldSite)
	}))
	t.Cleanup(srv.Close)

	p := NewProbe(2 * time.Second)
	sig, err := p.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if sig.Title != "Joe's Plumbing" {
		t.Errorf("title = %q", sig.Title)
	}
	if sig.Generator != "WordPress 4.9" {
		t.Errorf("generator = %q", sig.Generator)
	}
	if sig.HasViewport {
		t.Error("no viewport meta present, got HasViewport=true")
	}
	if sig.CopyrightYear != 2015 {
		t.Errorf("copyright year = %d, want 2015", sig.CopyrightYear)
	}
	if sig.HTTPS {
		t.Error("httptest server is plain http")
	}

	note := sig.Note(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	for _, want := range []string{"no HTTPS", "not mobile-friendly", "WordPress 4.9", "copyright stale (2015)"} {
		if !strings.Contains(note, want) {
			t.Errorf("note %q missing %q", note, want)
		}
	}
}

func TestAnalyzerSweep(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, freshSite)
	}))
	t.Cleanup(site.Close)

	b, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	ctx := context.Background()

	withSite := domain.Lead{
		ID: "a1", UserID: "u-an", BusinessName: "Fresh Co",
		Website: site.URL, PlaceID: "pa1",
		Status: domain.StatusFound, Priority: domain.PriorityMedium,
		FoundAt: time.Now().UTC(),
	}
	noSite := domain.Lead{
		ID: "a2", UserID: "u-an", BusinessName: "Siteless",
		PlaceID: "pa2",
		Status:  domain.StatusReadyForMock, Priority: domain.PriorityHigh,
		FoundAt: time.Now().UTC(),
	}
	dead := domain.Lead{
		ID: "a3", UserID: "u-an", BusinessName: "Dead Site Inc",
		Website: "http://127.0.0.1:1", PlaceID: "pa3",
		Status: domain.StatusFound, Priority: domain.PriorityMedium,
		FoundAt: time.Now().UTC(),
	}
	for _, l := range []domain.Lead{withSite, noSite, dead} {
		l := l
		if _, err := b.InsertLeadIfNew(ctx, &l); err != nil {
			t.Fatal(err)
		}
	}

	a := &Analyzer{Store: b, Probe: NewProbe(time.Second)}
	advanced, err := a.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if advanced != 1 {
		t.Fatalf("advanced = %d, want 1", advanced)
	}

	got, _ := b.GetLead(ctx, "a1")
	if got.Status != domain.StatusUnderAnalysis {
		t.Errorf("a1 status = %q, want under_analysis", got.Status)
	}
	if got.Note == "" {
		t.Error("a1 should carry a findings note")
	}

	// unreachable site stays at found for the next sweep
	got3, _ := b.GetLead(ctx, "a3")
	if got3.Status != domain.StatusFound {
		t.Errorf("a3 status = %q, want found", got3.Status)
	}

	// ready_for_mock lead untouched
	got2, _ := b.GetLead(ctx, "a2")
	if got2.Status != domain.StatusReadyForMock {
		t.Errorf("a2 status = %q", got2.Status)
	}
}
