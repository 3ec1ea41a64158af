// Package segment locates the standard Item sections of SEC disclosure documents.
package segment

import (
	"regexp"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

// sectionPattern pairs a header regexp with the label it produces.
type sectionPattern struct {
	re    *regexp.Regexp
	label string
}

// sectionPatterns is the standard Item sequence of a 10-K style filing, in
// document order. Only the first match of each pattern is used.
var sectionPatterns = []sectionPattern{
	{regexp.MustCompile(`(?i)ITEM\s+1\.\s+BUSINESS`), "Item 1 - Business"},
	{regexp.MustCompile(`(?i)ITEM\s+1A\.\s+RISK\s+FACTORS`), "Item 1A - Risk Factors"},
	{regexp.MustCompile(`(?i)ITEM\s+2\.\s+PROPERTIES`), "Item 2 - Properties"},
	{regexp.MustCompile(`(?i)ITEM\s+3\.\s+LEGAL\s+PROCEEDINGS`), "Item 3 - Legal Proceedings"},
	{regexp.MustCompile(`(?i)ITEM\s+4\.\s+MINE\s+SAFETY`), "Item 4 - Mine Safety"},
	{regexp.MustCompile(`(?i)ITEM\s+5\.\s+MARKET\s+FOR`), "Item 5 - Market for Securities"},
	{regexp.MustCompile(`(?i)ITEM\s+6\.\s+SELECTED\s+FINANCIAL`), "Item 6 - Selected Financial Data"},
	{regexp.MustCompile(`(?i)ITEM\s+7\.\s+MANAGEMENT'S\s+DISCUSSION`), "Item 7 - MD&A"},
	{regexp.MustCompile(`(?i)ITEM\s+8\.\s+FINANCIAL\s+STATEMENTS`), "Item 8 - Financial Statements"},
	{regexp.MustCompile(`(?i)ITEM\s+9\.\s+CHANGES\s+IN\s+AND\s+DISAGREEMENTS`), "Item 9 - Changes and Disagreements"},
	{regexp.MustCompile(`(?i)ITEM\s+10\.\s+DIRECTORS`), "Item 10 - Directors and Officers"},
	{regexp.MustCompile(`(?i)ITEM\s+11\.\s+EXECUTIVE\s+COMPENSATION`), "Item 11 - Executive Compensation"},
	{regexp.MustCompile(`(?i)ITEM\s+12\.\s+SECURITY\s+OWNERSHIP`), "Item 12 - Security Ownership"},
	{regexp.MustCompile(`(?i)ITEM\s+13\.\s+CERTAIN\s+RELATIONSHIPS`), "Item 13 - Certain Relationships"},
	{regexp.MustCompile(`(?i)ITEM\s+14\.\s+PRINCIPAL\s+ACCOUNTING`), "Item 14 - Principal Accounting"},
	{regexp.MustCompile(`(?i)ITEM\s+15\.\s+EXHIBITS`), "Item 15 - Exhibits"},
}

// chunkPatterns is the reduced subset used to label individual chunks.
var chunkPatterns = []sectionPattern{
	{regexp.MustCompile(`(?i)ITEM\s+1\.\s+BUSINESS`), "Item 1 - Business"},
	{regexp.MustCompile(`(?i)ITEM\s+1A\.\s+RISK\s+FACTORS`), "Item 1A - Risk Factors"},
	{regexp.MustCompile(`(?i)ITEM\s+7\.\s+MANAGEMENT'S\s+DISCUSSION`), "Item 7 - MD&A"},
	{regexp.MustCompile(`(?i)ITEM\s+8\.\s+FINANCIAL\s+STATEMENTS`), "Item 8 - Financial Statements"},
}

// lookAheadGuard is how far past a section's start the next header must lie to
// delimit it. Headers within this distance (for instance a repeated header in
// a leftover table of contents line) do not end the section. Kept at the
// original value; sections closer together than this may be mis-bounded.
const lookAheadGuard = 100

// Segment returns the Item sections found in the normalized text, keyed by
// label. A pattern with no match contributes no entry; an absent label is not
// an error. Spans of different labels may overlap. This is best-effort
// labeling, not structural validation.
func Segment(text string) map[string]models.Section {
	sections := make(map[string]models.Section)
	for _, p := range sectionPatterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0]
		end := len(text)
		searchFrom := start + lookAheadGuard
		if searchFrom > len(text) {
			searchFrom = len(text)
		}
		for _, other := range sectionPatterns {
			if other.label == p.label {
				continue
			}
			next := other.re.FindStringIndex(text[searchFrom:])
			if next == nil {
				continue
			}
			if candidate := searchFrom + next[0]; candidate < end {
				end = candidate
			}
		}
		sections[p.label] = models.Section{
			Label:       p.label,
			StartOffset: start,
			EndOffset:   end,
		}
	}
	return sections
}

// Identify returns the label of the first chunk pattern matching chunkText,
// or "" when the chunk carries no recognizable section header. The scan is
// over the chunk text itself, independent of the full-document segmentation.
func Identify(chunkText string) string {
	for _, p := range chunkPatterns {
		if p.re.MatchString(chunkText) {
			return p.label
		}
	}
	return ""
}
