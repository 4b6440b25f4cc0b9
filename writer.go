package makersnap

import "context"

// Run bundles everything a single invocation produced: the structured
// record, its diagnostics, and the raw page artifacts.
type Run struct {
	Profile     *Profile
	Diagnostics *Diagnostics

	// HTML is the full rendered document.
	HTML string

	// Screenshot is a full-page PNG, nil when the loader produced none.
	Screenshot []byte

	// Markdown is an optional readable rendition of the page, empty when
	// no converter was configured.
	Markdown string
}

// ArtifactPaths reports where a run's artifacts were written.
type ArtifactPaths struct {
	Dir         string
	Profile     string
	Diagnostics string
	HTML        string
	Screenshot  string // empty when no screenshot was captured
	Markdown    string // empty when no markdown was produced
}

// ArtifactWriter persists a run's artifacts to a sink.
type ArtifactWriter interface {
	// WriteRun persists all artifacts of the run and returns their
	// locations. Optional artifacts (screenshot, markdown) are skipped
	// when absent rather than written empty.
	WriteRun(ctx context.Context, run *Run) (*ArtifactPaths, error)
}

// Converter transforms HTML content into a readable Markdown rendition of
// the captured page.
type Converter interface {
	Convert(html string) (string, error)
}
