// Package goquery implements profile extraction from rendered HTML using
// CSS selector strategies. It operates on the serialized page rather than
// a live browser handle, so the extraction logic is testable against
// synthetic fixtures without Chrome.
package goquery

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/jmoskal/makersnap"
	"golang.org/x/net/html"
)

// Strategy is a named CSS selector tried as part of an ordered fallback
// chain. Every attempt is recorded in Diagnostics.SelectorsFound so a
// maintainer can tell which fallback fired after the source site changes
// its markup.
type Strategy struct {
	Name     string
	Selector string
}

// headingStrategies locate the account name. The platform-specific span
// class is the fallback for profile layouts where the name is not an h1.
var headingStrategies = []Strategy{
	{Name: "heading", Selector: "h1"},
	{Name: "username", Selector: "span.mw-css-1v58zuy"},
}

// pointsStrategies locate the reward point total. The legacy class is a
// generated CSS class observed on older profile layouts.
var pointsStrategies = []Strategy{
	{Name: "points", Selector: `[class*="points"]`},
	{Name: "reward", Selector: `[class*="reward"]`},
	{Name: "points-legacy", Selector: ".mw-css-1541sxf"},
}

// titleSelector locates a model card's title element.
const titleSelector = "h3, h2, .title"

// numberPattern matches integer-or-decimal numeric tokens, including
// comma-grouped thousands ("1,234").
var numberPattern = regexp.MustCompile(`\d+[,.]?\d*`)

// Ensure Extractor implements makersnap.ProfileExtractor at compile time.
var _ makersnap.ProfileExtractor = (*Extractor)(nil)

// Extractor extracts a normalized profile record from rendered HTML.
// The zero value is not usable; use NewExtractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and builds the profile record plus diagnostics
// in a single pass. Missing or malformed markup never fails extraction;
// every field has a deterministic default.
func (e *Extractor) Extract(pageHTML string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, nil, makersnap.Errorf(makersnap.EEXTRACTION, "failed to parse HTML: %v", err)
	}

	diag := &makersnap.Diagnostics{
		URL:            sourceURL,
		HTMLSizeBytes:  len(pageHTML),
		ContentHash:    hashContent(pageHTML),
		SelectorsFound: make(map[string]int),
	}

	profile := &makersnap.Profile{
		SourceURL: sourceURL,
		Models:    make(map[string]*makersnap.ModelEntry),
	}

	profile.AccountName = e.extractAccountName(doc, diag)
	profile.Points = e.extractPoints(doc, diag)
	e.extractModels(doc, profile, diag)

	stats := e.extractStats(doc)
	if !stats.Empty() {
		profile.Stats = stats
	}

	return profile, diag, nil
}

// extractAccountName tries each heading strategy in order and returns the
// trimmed text of the first element of the first strategy that matched.
// Every strategy's match count is recorded regardless of outcome.
func (e *Extractor) extractAccountName(doc *goquery.Document, diag *makersnap.Diagnostics) string {
	name := ""
	for _, s := range headingStrategies {
		sel := doc.Find(s.Selector)
		diag.SelectorsFound[s.Name] = sel.Length()
		if name == "" && sel.Length() > 0 {
			name = strings.TrimSpace(sel.First().Text())
		}
	}
	return name
}

// extractPoints tries each points strategy in order; the first strategy
// with at least one match supplies the text, whose first numeric substring
// becomes the point total. No match, or a match whose text carries no
// parseable number, defaults to 0.
func (e *Extractor) extractPoints(doc *goquery.Document, diag *makersnap.Diagnostics) int {
	points := 0
	matched := false
	for _, s := range pointsStrategies {
		sel := doc.Find(s.Selector)
		diag.SelectorsFound[s.Name] = sel.Length()
		if matched || sel.Length() == 0 {
			continue
		}
		matched = true
		if n, ok := parseCount(sel.First().Text()); ok {
			points = n
		}
	}
	return points
}

// extractModels selects every element carrying the tracking attribute and
// builds model entries in document order. Duplicate ids are skipped
// entirely: the first occurrence wins, guarding against the platform
// rendering the same logical item twice (featured strip plus main grid).
func (e *Extractor) extractModels(doc *goquery.Document, profile *makersnap.Profile, diag *makersnap.Diagnostics) {
	sel := doc.Find(makersnap.MarkerSelector)
	diag.SelectorsFound["content-loaded"] = sel.Length()

	sel.Each(func(_ int, card *goquery.Selection) {
		id, ok := card.Attr("data-trackid")
		if !ok || id == "" {
			return
		}
		if _, seen := profile.Models[id]; seen {
			return
		}
		profile.Models[id] = &makersnap.ModelEntry{
			ID:                id,
			Title:             extractTitle(card),
			RawMetricsNumbers: collectNumbers(card),
		}
		profile.ModelOrder = append(profile.ModelOrder, id)
	})
}

// extractTitle returns the card's title via a fallback chain: text of a
// title-labeled child, else the card's own text with numeric metric tokens
// stripped, else the empty string.
func extractTitle(card *goquery.Selection) string {
	if titleEl := card.Find(titleSelector); titleEl.Length() > 0 {
		if title := strings.TrimSpace(titleEl.First().Text()); title != "" {
			return title
		}
	}

	// Fall back to the card's own text. Metric numbers are stripped so a
	// card rendered as "Widget 99 12" titles as "Widget".
	stripped := numberPattern.ReplaceAllString(card.Text(), " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// collectNumbers scans all text nodes in the card's subtree depth-first
// and returns every numeric-looking token in document order. Repeated
// identical numbers are preserved: "0 0 0" is a model with no engagement,
// not a missing field.
func collectNumbers(card *goquery.Selection) []string {
	numbers := []string{}
	for _, node := range card.Nodes {
		walkTextNodes(node, func(text string) {
			numbers = append(numbers, numberPattern.FindAllString(text, -1)...)
		})
	}
	return numbers
}

// walkTextNodes visits every text node under n in depth-first order.
func walkTextNodes(n *html.Node, visit func(string)) {
	if n.Type == html.TextNode {
		visit(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTextNodes(c, visit)
	}
}

// extractStats scans the profile header for secondary metrics. Every miss
// leaves the corresponding field at zero; a fully-zero result is reported
// as empty by the caller.
func (e *Extractor) extractStats(doc *goquery.Document) *makersnap.ProfileStats {
	stats := &makersnap.ProfileStats{}

	if level := doc.Find(`[class*="level-icon-size"]`); level.Length() > 0 {
		if n, ok := parseCount(level.First().Text()); ok {
			stats.Level = n
		}
	}

	lines := textLines(doc)
	for i, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "follower"):
			setStat(&stats.Followers, line, prevLine(lines, i))
		case strings.Contains(lower, "following"):
			setStat(&stats.Following, line, prevLine(lines, i))
		case strings.Contains(lower, "boost"):
			setStat(&stats.Boosts, line, prevLine(lines, i))
		case strings.Contains(lower, "like"):
			setStat(&stats.Likes, line, prevLine(lines, i))
		case strings.Contains(lower, "download"):
			setStat(&stats.Downloads, line, prevLine(lines, i))
		case strings.Contains(lower, "print") && !strings.Contains(lower, "profile"):
			setStat(&stats.Prints, line, prevLine(lines, i))
		}
	}

	return stats
}

// setStat assigns the first numeric token found in the label line, falling
// back to the preceding line where the platform renders the number above
// its label. First occurrence wins.
func setStat(dst *int, line, prev string) {
	if *dst != 0 {
		return
	}
	if n, ok := parseCount(line); ok {
		*dst = n
		return
	}
	if n, ok := parseCount(prev); ok {
		*dst = n
	}
}

func prevLine(lines []string, i int) string {
	if i == 0 {
		return ""
	}
	return lines[i-1]
}

// textLines returns the document body's visible text split into trimmed,
// non-empty lines.
func textLines(doc *goquery.Document) []string {
	var lines []string
	for _, raw := range strings.Split(doc.Find("body").Text(), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseCount extracts the first numeric substring from text and parses it
// as a non-negative integer. Comma grouping is stripped and decimals are
// truncated ("1,234" -> 1234, "1.5" -> 1).
func parseCount(text string) (int, bool) {
	token := numberPattern.FindString(strings.ReplaceAll(text, " ", " "))
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, ",", "")
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), true
}

// hashContent computes the xxhash64 of content and returns it as hex.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}
