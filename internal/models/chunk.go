// Package models defines core data structures for filings, chunks, and search results.
package models

// Section is a labeled span located inside a filing's normalized text.
// Offsets are byte positions into the text the segmenter was given.
// Spans of different labels may overlap; segmentation is best-effort and
// only used to label chunks, never to validate document structure.
type Section struct {
	Label       string `json:"label"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Chunk is a bounded, possibly boundary-optimized window of a filing's text,
// the atomic unit indexed for retrieval. Length always equals len(Text).
// Metadata carries the caller-supplied filing identity fields plus the
// positional fields attached by the chunker.
type Chunk struct {
	Text         string         `json:"text"`
	Index        int            `json:"chunk_index"`
	StartOffset  int            `json:"start_offset"`
	EndOffset    int            `json:"end_offset"`
	Length       int            `json:"length"`
	SectionLabel string         `json:"section_label,omitempty"`
	Metadata     map[string]any `json:"metadata"`
}

// VectorRecord is one entry of the vector index's metadata arena. VectorID is
// the record's position in the arena, assigned at insertion and never reused.
type VectorRecord struct {
	VectorID int            `json:"vector_id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// SearchResult is a single similarity hit. Similarity is 1/(1+distance),
// bounded in (0,1]; Distance is the raw squared-Euclidean distance.
type SearchResult struct {
	Text       string         `json:"text"`
	Metadata   map[string]any `json:"metadata"`
	Similarity float64        `json:"similarity_score"`
	Distance   float64        `json:"distance"`
	VectorID   int            `json:"vector_id"`
}
