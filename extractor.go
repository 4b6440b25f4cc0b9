package makersnap

// ProfileExtractor maps a loosely-structured profile page into a Profile
// plus Diagnostics, tolerating markup drift. Implementations work on the
// serialized HTML rather than a live browser handle so the extraction
// logic is testable against synthetic fixtures.
type ProfileExtractor interface {
	// Extract runs every selector strategy against the HTML and returns
	// the normalized record. Extraction never fails on malformed or
	// missing markup; every field has a deterministic default and every
	// strategy attempt is recorded in Diagnostics.SelectorsFound.
	// The only failure mode is HTML that cannot be parsed at all, which
	// is returned as an EEXTRACTION error.
	Extract(html string, sourceURL string) (*Profile, *Diagnostics, error)
}
