package indexer

import "regexp"

// boundarySearchTail is how far from the window's end a boundary is searched.
const boundarySearchTail = 200

var (
	reSentenceEnd    = regexp.MustCompile(`[.!?]\s+`)
	reParagraphBreak = regexp.MustCompile(`\n\s*\n`)
)

// boundaryStrategy proposes a truncation point inside a window, or reports
// that it found none. Strategies are evaluated top-down; the list order is
// the preference order and new heuristics slot in without touching the
// chunker itself.
type boundaryStrategy interface {
	find(window string) (cut int, ok bool)
}

// defaultBoundaries prefers ending a chunk after a sentence, then at a
// paragraph break.
var defaultBoundaries = []boundaryStrategy{
	sentenceBoundary{},
	paragraphBoundary{},
}

// sentenceBoundary cuts after the last sentence terminator followed by
// whitespace in the window's tail.
type sentenceBoundary struct{}

func (sentenceBoundary) find(window string) (int, bool) {
	searchStart := tailStart(window)
	matches := reSentenceEnd.FindAllStringIndex(window[searchStart:], -1)
	if len(matches) == 0 {
		return 0, false
	}
	last := matches[len(matches)-1]
	return searchStart + last[1], true
}

// paragraphBoundary cuts at the last blank-line break in the window's tail.
type paragraphBoundary struct{}

func (paragraphBoundary) find(window string) (int, bool) {
	searchStart := tailStart(window)
	matches := reParagraphBreak.FindAllStringIndex(window[searchStart:], -1)
	if len(matches) == 0 {
		return 0, false
	}
	last := matches[len(matches)-1]
	return searchStart + last[0], true
}

func tailStart(window string) int {
	if len(window) <= boundarySearchTail {
		return 0
	}
	return len(window) - boundarySearchTail
}
