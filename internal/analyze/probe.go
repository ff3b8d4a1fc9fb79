// Package analyze inspects the websites of found leads for signs of an
// outdated build, and moves them to under_analysis with a findings note.
package analyze

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Probe fetches a lead's website and extracts outdatedness signals.
type Probe struct {
	hc *http.Client
}

func NewProbe(timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Probe{hc: &http.Client{Timeout: timeout}}
}

// Signals is what one page fetch tells us about a site.
type Signals struct {
	Title         string
	Generator     string // meta generator, e.g. "WordPress 4.9"
	HTTPS         bool
	HasViewport   bool // missing viewport meta = not mobile-friendly
	CopyrightYear int  // 0 when no year found in the footer text
}

var yearRe = regexp.MustCompile(`(?:©|\(c\)|copyright)\s*(\d{4})`)

// Fetch downloads the page and parses its signals.
func (p *Probe) Fetch(ctx context.Context, siteURL string) (Signals, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return Signals{}, fmt.Errorf("probe request: %w", err)
	}
	req.Header.Set("User-Agent", "LeadScout/1.0 (+local)")

	res, err := p.hc.Do(req)
	if err != nil {
		return Signals{}, fmt.Errorf("probe get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return Signals{}, fmt.Errorf("probe status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return Signals{}, fmt.Errorf("probe parse: %w", err)
	}

	var s Signals
	s.HTTPS = strings.HasPrefix(strings.ToLower(siteURL), "https://")
	s.Title = strings.TrimSpace(doc.Find("title").First().Text())
	s.Generator, _ = doc.Find(`meta[name="generator"]`).First().Attr("content")
	s.HasViewport = doc.Find(`meta[name="viewport"]`).Length() > 0

	footer := strings.ToLower(doc.Find("footer").Text())
	if footer == "" {
		footer = strings.ToLower(doc.Find("body").Text())
	}
	if m := yearRe.FindStringSubmatch(footer); len(m) == 2 {
		var y int
		fmt.Sscanf(m[1], "%d", &y)
		s.CopyrightYear = y
	}
	return s, nil
}

// Note renders the signals into the human-readable note stored on the
// lead.
func (s Signals) Note(now time.Time) string {
	var parts []string
	if !s.HTTPS {
		parts = append(parts, "no HTTPS")
	}
	if !s.HasViewport {
		parts = append(parts, "not mobile-friendly (no viewport meta)")
	}
	if s.Generator != "" {
		parts = append(parts, "built with "+s.Generator)
	}
	if s.CopyrightYear > 0 && now.Year()-s.CopyrightYear >= 2 {
		parts = append(parts, fmt.Sprintf("copyright stale (%d)", s.CopyrightYear))
	}
	if len(parts) == 0 {
		return "Website looks current"
	}
	return "Website signals: " + strings.Join(parts, "; ")
}
