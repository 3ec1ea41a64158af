// Package indexer provides filing chunking and the ingest pipeline.
package indexer

import (
	"fmt"
	"strings"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/segment"
)

// minTailLength is the minimum stripped length of a window. Once a window's
// stripped text falls below this, it and all later windows are discarded so
// the document does not end in a near-empty trailing fragment.
const minTailLength = 100

// Chunker splits normalized text into overlapping, boundary-optimized
// character windows.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	boundaries   []boundaryStrategy
}

// NewChunker creates a chunker with the given size and overlap (in
// characters). Returns an error when overlap is not smaller than size; a
// non-positive step would never advance.
func NewChunker(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap must be non-negative, got %d", chunkOverlap)
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be less than chunk size (%d)", chunkOverlap, chunkSize)
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		boundaries:   defaultBoundaries,
	}, nil
}

// Chunk splits text into overlapping windows and attaches metadata to each.
// Window starts advance by chunkSize-chunkOverlap; each window is truncated
// at a sentence or paragraph boundary when one lies near its end. The
// template map is copied into every chunk's metadata along with the chunk's
// positional fields. Output is deterministic for identical input and
// configuration; chunk indices are contiguous from 0.
func (c *Chunker) Chunk(text string, template map[string]any) []*models.Chunk {
	step := c.chunkSize - c.chunkOverlap
	chunks := make([]*models.Chunk, 0)

	for start := 0; start < len(text); start += step {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]
		if len(strings.TrimSpace(window)) < minTailLength {
			break
		}
		chunkText := c.optimizeBoundary(window)

		index := len(chunks)
		metadata := make(map[string]any, len(template)+5)
		for k, v := range template {
			metadata[k] = v
		}
		label := segment.Identify(chunkText)
		metadata["chunk_index"] = index
		metadata["start_offset"] = start
		metadata["end_offset"] = end
		metadata["chunk_length"] = len(chunkText)
		metadata["section_label"] = label

		chunks = append(chunks, &models.Chunk{
			Text:         chunkText,
			Index:        index,
			StartOffset:  start,
			EndOffset:    end,
			Length:       len(chunkText),
			SectionLabel: label,
			Metadata:     metadata,
		})
	}
	return chunks
}

// optimizeBoundary truncates the window at the best boundary found by the
// strategy list. Windows that already fall well short of the configured size
// reached the document end and are kept as-is. When no strategy finds a
// boundary the window is kept unmodified; data is never discarded to force
// a boundary.
func (c *Chunker) optimizeBoundary(window string) string {
	if len(window) <= c.chunkSize*9/10 {
		return window
	}
	for _, strategy := range c.boundaries {
		if cut, ok := strategy.find(window); ok {
			return strings.TrimSpace(window[:cut])
		}
	}
	return window
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.chunkSize }

// Overlap returns the configured chunk overlap.
func (c *Chunker) Overlap() int { return c.chunkOverlap }
