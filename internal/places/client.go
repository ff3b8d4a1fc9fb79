package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Client talks to the maps HTTP API: geocoding, nearby search and place
// details. One client per engine; details calls are paced by the limiter.
type Client struct {
	hc      *http.Client
	baseURL string
	limiter *rate.Limiter

	mu  sync.RWMutex
	key string
}

type Config struct {
	APIKey         string
	BaseURL        string        // override for tests; default maps host
	Timeout        time.Duration // per-request; default 10s
	DetailInterval time.Duration // min gap between details calls; default 200ms
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.DetailInterval <= 0 {
		cfg.DetailInterval = 200 * time.Millisecond
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		key:     cfg.APIKey,
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Every(cfg.DetailInterval), 1),
	}
}

// SetAPIKey swaps the credential at runtime; the secrets endpoint calls
// this after writing the keychain.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.key = key
	c.mu.Unlock()
}

func (c *Client) apiKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}

// getJSON performs one GET against path with query params and decodes
// the body into out. Transport errors and non-2xx responses come back
// as ErrUpstream.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey())
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LeadScout/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrUpstream, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: %s status %d", ErrUpstream, path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s decode: %v", ErrUpstream, path, err)
	}
	return nil
}
