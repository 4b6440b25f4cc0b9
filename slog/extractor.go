// Package slog provides logging decorators for makersnap services.
package slog

import (
	"log/slog"
	"time"

	"github.com/jmoskal/makersnap"
)

// Ensure LoggingExtractor implements makersnap.ProfileExtractor.
var _ makersnap.ProfileExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ProfileExtractor with debug logging of which
// selector strategies fired.
type LoggingExtractor struct {
	next   makersnap.ProfileExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next makersnap.ProfileExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
	begin := time.Now()
	profile, diag, err := e.next.Extract(html, sourceURL)

	attrs := []any{
		"url", sourceURL,
		"duration", time.Since(begin),
		"err", err,
	}
	if profile != nil {
		attrs = append(attrs,
			"account", profile.AccountName,
			"points", profile.Points,
			"models", len(profile.Models),
		)
	}
	if diag != nil {
		attrs = append(attrs, "selectors", diag.SelectorsFound)
	}
	e.logger.Info("extract", attrs...)

	return profile, diag, err
}
