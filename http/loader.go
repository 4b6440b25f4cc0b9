// Package http provides an HTTP-based implementation of makersnap.PageLoader
// for capturing the server-rendered HTML without executing JavaScript.
// The platform's model grid is client-rendered, so loads through this
// package are degraded by construction; they exist for quick snapshots and
// for environments without Chrome.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmoskal/makersnap"
)

// markerAttribute is the literal tracking attribute searched for in the
// raw body to decide whether any server-rendered content items exist.
const markerAttribute = "data-trackid"

// Ensure Loader implements makersnap.PageLoader at compile time.
var _ makersnap.PageLoader = (*Loader)(nil)

// Loader retrieves profile pages with plain HTTP requests. Unlike
// rod.Loader it does not execute JavaScript and never produces a
// screenshot.
type Loader struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to makersnap.DefaultNavTimeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
// Defaults to makersnap.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// NewLoader creates a new HTTP-based Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		userAgent: makersnap.DefaultUserAgent,
		timeout:   makersnap.DefaultNavTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// Load retrieves the page body. Transport errors and non-200 responses are
// ENAVIGATION failures; anything the server returned with a 200 is a valid
// (possibly degraded) page.
func (l *Loader) Load(ctx context.Context, url string) (*makersnap.LoadedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, makersnap.Errorf(makersnap.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "reading body of %s: %v", url, err)
	}

	html := string(body)
	return &makersnap.LoadedPage{
		URL:         resp.Request.URL.String(),
		HTML:        html,
		MarkerFound: strings.Contains(html, markerAttribute),
	}, nil
}

// Close releases resources. For the HTTP loader this is a no-op since
// http.Client doesn't require explicit cleanup.
func (l *Loader) Close() error {
	return nil
}
