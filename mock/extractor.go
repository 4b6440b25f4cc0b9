package mock

import "github.com/jmoskal/makersnap"

var _ makersnap.ProfileExtractor = (*Extractor)(nil)

// Extractor is a mock implementation of makersnap.ProfileExtractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error)
}

func (e *Extractor) Extract(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
	return e.ExtractFn(html, sourceURL)
}
