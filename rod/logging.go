package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoskal/makersnap"
)

// Ensure LoggingLoader implements makersnap.PageLoader.
var _ makersnap.PageLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a PageLoader with debug logging.
type LoggingLoader struct {
	next   makersnap.PageLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next makersnap.PageLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load logs the URL being loaded and delegates to the wrapped loader.
func (l *LoggingLoader) Load(ctx context.Context, url string) (page *makersnap.LoadedPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs,
				"bytes", len(page.HTML),
				"marker_found", page.MarkerFound,
				"screenshot", len(page.Screenshot) > 0,
			)
		}
		l.logger.Info("load", attrs...)
	}(time.Now())
	return l.next.Load(ctx, url)
}

// Close delegates to the wrapped loader.
func (l *LoggingLoader) Close() error {
	return l.next.Close()
}
