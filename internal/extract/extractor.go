// Package extract converts raw SEC filing markup into normalized plain text.
package extract

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	reWhitespace     = regexp.MustCompile(`\s+`)
	reLineBreaks     = regexp.MustCompile(`\n\s*\n\s*\n+`)
	reTableOfContent = regexp.MustCompile(`(?i)Table of Contents`)
	reSECMasthead    = regexp.MustCompile(`(?i)UNITED STATES\s+SECURITIES AND EXCHANGE COMMISSION`)

	reScriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reTag         = regexp.MustCompile(`<[^>]+>`)
)

// Extractor extracts normalized plain text from filing markup.
type Extractor struct {
	logger *zap.Logger // optional; when set, logs fallback extraction
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets a logger for degraded-extraction warnings.
func WithLogger(l *zap.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = l }
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the normalized text content of the given markup. It parses
// the markup structurally, drops script/style subtrees and the boilerplate
// index tables SEC filings carry, then cleans the collected text. If the
// structured parse fails the extraction degrades to a regex tag-stripper over
// the same input; Extract never fails outright.
func (e *Extractor) Extract(markup string) string {
	text, err := extractTree(markup)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("structured extraction failed, using fallback", zap.Error(err))
		}
		return e.Fallback(markup)
	}
	return cleanText(text)
}

// Fallback strips markup with regular expressions only. Used when the
// structured parse fails; the result is degraded but usable.
func (e *Extractor) Fallback(markup string) string {
	text := reScriptBlock.ReplaceAllString(markup, "")
	text = reStyleBlock.ReplaceAllString(text, "")
	text = reTag.ReplaceAllString(text, "")
	return cleanText(text)
}

// extractTree parses markup and collects text nodes, skipping script and
// style elements and tables marked as filing-index boilerplate.
func extractTree(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "table":
				if isBoilerplateTable(n) {
					return
				}
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String(), nil
}

// isBoilerplateTable reports whether the table carries one of the SEC index
// classes (tableFile, tableHeader) that hold navigation rather than content.
func isBoilerplateTable(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == "tableFile" || class == "tableHeader" {
				return true
			}
		}
	}
	return false
}

// cleanText normalizes extracted text: decodes entities, collapses whitespace
// runs to single spaces, collapses excessive line breaks, trims, and removes
// the boilerplate phrases every filing repeats.
func cleanText(text string) string {
	text = stdhtml.UnescapeString(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reLineBreaks.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	text = reTableOfContent.ReplaceAllString(text, "")
	text = reSECMasthead.ReplaceAllString(text, "")
	return text
}
