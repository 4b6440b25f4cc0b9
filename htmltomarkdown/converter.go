// Package htmltomarkdown renders a captured profile page as readable
// Markdown, so a run's page artifact can be skimmed without opening the
// raw HTML.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/jmoskal/makersnap"
)

// Ensure Converter implements makersnap.Converter at compile time.
var _ makersnap.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert captured pages to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a captured page into Markdown. Hydration scripts and
// styles are dropped first; client-rendered pages carry megabytes of both
// and neither belongs in a readable snapshot.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", makersnap.Errorf(makersnap.EINVALID, "empty HTML input")
	}

	cleaned, err := stripNonContent(html)
	if err != nil {
		return "", makersnap.Errorf(makersnap.EINVALID, "failed to parse HTML: %v", err)
	}

	result, err := c.conv.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return result, nil
}

// stripNonContent removes script, style, and noscript subtrees and returns
// the body markup.
func stripNonContent(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		// Fragment input has no body element; convert as-is.
		return html, nil
	}
	return body, nil
}
