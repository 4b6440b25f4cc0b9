package makersnap

import (
	"context"
	"time"
)

// MarkerSelector matches the platform's per-item tracking attribute. Its
// appearance is the signal that the client-rendered model grid is present.
const MarkerSelector = "[data-trackid]"

// Default timeouts, matching the platform's observed render latency.
const (
	// DefaultNavTimeout bounds navigation (DNS/connect/HTTP). Expiry is
	// fatal: no DOM existed, so no artifacts are produced.
	DefaultNavTimeout = 60 * time.Second

	// DefaultMarkerTimeout bounds the wait for the content-loaded marker
	// after navigation. Expiry is NOT fatal: partial pages (zero models
	// but a valid account name) are a legitimate output, so the loader
	// returns the DOM as-is in degraded mode.
	DefaultMarkerTimeout = 30 * time.Second
)

// DefaultUserAgent is sent with every page load so the platform serves the
// same markup it serves desktop browsers.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LoadedPage is the result of a successful page load.
type LoadedPage struct {
	// URL is the final URL after redirects.
	URL string

	// HTML is the rendered document at capture time.
	HTML string

	// MarkerFound reports whether the content-loaded marker appeared
	// within the wait budget. False means degraded mode: extraction still
	// proceeds on whatever DOM state existed.
	MarkerFound bool

	// Screenshot is a full-page PNG, nil when the loader cannot produce
	// one (static HTTP loads, or a failed capture).
	Screenshot []byte
}

// PageLoader turns a URL into a DOM believed to contain the target content,
// despite client-side rendering delays.
// Implementations may use browser automation to execute JavaScript.
type PageLoader interface {
	// Load navigates to the URL and blocks until the page's dynamic
	// content is present or the marker wait budget elapses.
	// Returns an ENAVIGATION error only when navigation itself fails;
	// a marker-wait timeout is reported via LoadedPage.MarkerFound.
	Load(ctx context.Context, url string) (*LoadedPage, error)

	// Close releases browser resources.
	// Must be called when the loader is no longer needed.
	Close() error
}
