package makersnap

// Profile represents the structured record extracted from a single profile
// page. It is built fresh per invocation, fully populated in one pass, and
// never mutated afterwards.
type Profile struct {
	// SourceURL is the input URL, set once at extraction start.
	SourceURL string `json:"sourceUrl"`

	// AccountName is derived from the page's primary heading element.
	// Empty string when absent; a missing heading never fails extraction.
	AccountName string `json:"accountName"`

	// Points is the profile's reward point total. Defaults to 0 when no
	// points markup matched, which is indistinguishable from a genuine
	// zero total; Diagnostics.SelectorsFound records which strategy fired.
	Points int `json:"points"`

	// Models maps tracking ids to model entries. Keys are unique; when the
	// platform renders the same id twice (featured strip plus main grid)
	// the first occurrence in document order wins and the duplicate is
	// skipped entirely.
	Models map[string]*ModelEntry `json:"models"`

	// ModelOrder lists the tracking ids in document order. The JSON output
	// is keyed by id, so the order is carried separately for consumers
	// (the capture history) that need the on-page position.
	ModelOrder []string `json:"-"`

	// Stats holds secondary profile metrics when any were found.
	Stats *ProfileStats `json:"stats,omitempty"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.SourceURL == "" {
		return Errorf(EINVALID, "profile source URL required")
	}
	if p.Points < 0 {
		return Errorf(EINVALID, "profile points must be non-negative")
	}
	return nil
}

// ModelEntry represents a single published model on the profile page,
// anchored by the platform's per-item tracking attribute.
type ModelEntry struct {
	// ID is the tracking attribute value, used as the map key.
	ID string `json:"id"`

	// Title is best-effort text from the card's title element, falling back
	// to the card's own text with metric numbers stripped. Empty string
	// when nothing usable was found.
	Title string `json:"title"`

	// RawMetricsNumbers holds every numeric-looking text token found in the
	// card's subtree, preserving depth-first document order. Repeated
	// identical numbers are meaningful ("0 0 0" is a model with no
	// engagement, not a missing field) so no deduplication is applied.
	RawMetricsNumbers []string `json:"raw_metrics_numbers"`
}

// ProfileStats holds secondary metrics scraped from the profile header.
// Zero values mean the corresponding markup was not found.
type ProfileStats struct {
	Level     int `json:"level,omitempty"`
	Followers int `json:"followers,omitempty"`
	Following int `json:"following,omitempty"`
	Likes     int `json:"likes,omitempty"`
	Downloads int `json:"downloads,omitempty"`
	Prints    int `json:"prints,omitempty"`
	Boosts    int `json:"boosts,omitempty"`
}

// Empty reports whether no stat was extracted at all.
func (s *ProfileStats) Empty() bool {
	return s == nil || *s == ProfileStats{}
}

// Diagnostics is the secondary output of an extraction pass. It records
// which selector strategies matched and how many elements, so markup drift
// on the source site can be diagnosed without re-reading the DOM by hand.
type Diagnostics struct {
	URL           string `json:"url"`
	HTMLSizeBytes int    `json:"htmlSizeBytes"`

	// ContentHash is an xxhash64 fingerprint of the page HTML. Two runs
	// with the same hash saw byte-identical markup.
	ContentHash string `json:"contentHash"`

	// SelectorsFound maps strategy names to match counts. Every attempted
	// strategy gets an entry; 0 is valid and meaningful, it tells the
	// implementer which fallback fired.
	SelectorsFound map[string]int `json:"selectorsFound"`
}
