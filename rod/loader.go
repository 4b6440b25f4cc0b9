// Package rod implements makersnap.PageLoader using Chrome browser
// automation, so client-rendered profile pages are captured after their
// JavaScript has run.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/jmoskal/makersnap"
)

// Ensure Loader implements makersnap.PageLoader at compile time.
var _ makersnap.PageLoader = (*Loader)(nil)

// Loader retrieves rendered profile pages using a headless Chrome browser.
// Loader is safe for concurrent use by multiple goroutines; each Load owns
// its own page, acquired and released within the call.
type Loader struct {
	browser       *rod.Browser
	launcher      *launcher.Launcher
	userAgent     string
	navTimeout    time.Duration
	markerTimeout time.Duration
	stealth       bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithNavTimeout bounds navigation (DNS/connect/HTTP). Expiry is fatal.
// Defaults to makersnap.DefaultNavTimeout.
func WithNavTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.navTimeout = d
	}
}

// WithMarkerTimeout bounds the wait for the content-loaded marker after
// navigation. Expiry is non-fatal. Defaults to makersnap.DefaultMarkerTimeout.
func WithMarkerTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.markerTimeout = d
	}
}

// WithUserAgent overrides the user agent sent with every page load.
// Defaults to makersnap.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithStealth toggles stealth page creation, which masks the usual
// headless-automation fingerprints (navigator.webdriver and friends).
// Enabled by default; the platform serves placeholder markup to pages it
// identifies as bots.
func WithStealth(enabled bool) Option {
	return func(l *Loader) {
		l.stealth = enabled
	}
}

// NewLoader creates a new Loader that launches a headless Chrome browser.
// Close must be called when the Loader is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewLoader(opts ...Option) (*Loader, error) {
	l := newLoader(opts...)

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	l.browser = browser
	l.launcher = lnchr
	return l, nil
}

// newLoader applies defaults and options without touching the browser, so
// the configuration logic is testable without Chrome.
func newLoader(opts ...Option) *Loader {
	l := &Loader{
		userAgent:     makersnap.DefaultUserAgent,
		navTimeout:    makersnap.DefaultNavTimeout,
		markerTimeout: makersnap.DefaultMarkerTimeout,
		stealth:       true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load navigates to the URL, waits for the content-loaded marker, and
// returns the rendered page. A marker-wait timeout is reported via
// LoadedPage.MarkerFound rather than an error; only navigation-level
// failures are fatal.
func (l *Loader) Load(ctx context.Context, url string) (*makersnap.LoadedPage, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := l.newPage()
	if err != nil {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "opening page: %v", err)
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := (proto.NetworkSetUserAgentOverride{UserAgent: l.userAgent}).Call(page); err != nil {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "setting user agent: %v", err)
	}

	// Navigation is the only hard precondition: without a DOM there is
	// nothing to extract and no artifacts to write.
	nav := page.Timeout(l.navTimeout)
	if err := nav.Navigate(url); err != nil {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "navigating to %s: %v", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, makersnap.Errorf(makersnap.ENAVIGATION, "waiting for load of %s: %v", url, err)
	}

	// The marker wait is a quality gate, not a hard requirement: partial
	// pages (zero models but a valid account name) are legitimate output,
	// so a timeout degrades rather than fails the run.
	markerFound := page.Timeout(l.markerTimeout).
		WaitElementsMoreThan(makersnap.MarkerSelector, 0) == nil

	html, err := page.HTML()
	if err != nil {
		return nil, makersnap.Errorf(makersnap.EEXTRACTION, "reading DOM of %s: %v", url, err)
	}

	return &makersnap.LoadedPage{
		URL:         finalURL(page, url),
		HTML:        html,
		MarkerFound: markerFound,
		Screenshot:  capture(page),
	}, nil
}

// newPage creates a fresh page, with stealth scripts injected before any
// navigation when enabled.
func (l *Loader) newPage() (*rod.Page, error) {
	if l.stealth {
		return stealth.Page(l.browser)
	}
	return l.browser.Page(proto.TargetCreateTarget{})
}

// finalURL reports where navigation actually landed, falling back to the
// requested URL when target info is unavailable.
func finalURL(page *rod.Page, requested string) string {
	info, err := page.Info()
	if err != nil || info.URL == "" {
		return requested
	}
	return info.URL
}

// capture takes a full-page PNG screenshot. Capture failures are
// non-fatal; the screenshot is a diagnostic artifact, not part of the
// structured record.
func capture(page *rod.Page) []byte {
	bin, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil
	}
	return bin
}

// Close releases browser resources. Close is safe to call multiple times.
func (l *Loader) Close() error {
	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	if l.launcher != nil {
		l.launcher.Kill()
		l.launcher = nil
	}
	return err
}
