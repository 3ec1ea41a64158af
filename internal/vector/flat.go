// Package vector provides a flat in-memory vector index with metadata-filtered
// similarity search, plus a disk snapshot format.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/embedding"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

// FlatIndex stores vectors in a flat array and searches them by brute-force
// squared L2 distance. Vector IDs are positions in the array; they are never
// reused or reordered, so a record keeps its ID for the life of the index.
type FlatIndex struct {
	embedder   embedding.Embedder
	dimensions int
	vectors    [][]float32
	records    []*models.VectorRecord
	mu         sync.RWMutex
}

// IndexStats describes the current size of an index.
type IndexStats struct {
	TotalVectors int `json:"total_vectors"`
	Dimensions   int `json:"dimensions"`
}

// NewFlatIndex creates an empty index backed by the given embedder. The
// embedder's dimension must match dimensions.
func NewFlatIndex(embedder embedding.Embedder, dimensions int) (*FlatIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	if d := embedder.Dimensions(); d != dimensions {
		return nil, fmt.Errorf("embedder produces %d-dimensional vectors, index expects %d", d, dimensions)
	}
	return &FlatIndex{
		embedder:   embedder,
		dimensions: dimensions,
		vectors:    make([][]float32, 0),
		records:    make([]*models.VectorRecord, 0),
	}, nil
}

// Add embeds texts in one batch and appends them to the index. It returns the
// assigned vector IDs in input order. texts and metadataList must have equal
// length; on any error the index is unchanged.
func (x *FlatIndex) Add(ctx context.Context, texts []string, metadataList []map[string]any) ([]int, error) {
	if len(texts) != len(metadataList) {
		return nil, fmt.Errorf("texts (%d) and metadata (%d) length mismatch", len(texts), len(metadataList))
	}
	if len(texts) == 0 {
		return []int{}, nil
	}

	embeddings, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	for i, emb := range embeddings {
		if len(emb) != x.dimensions {
			return nil, fmt.Errorf("embedding %d has dimension %d, index expects %d", i, len(emb), x.dimensions)
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	ids := make([]int, len(texts))
	for i, text := range texts {
		id := len(x.vectors)
		x.vectors = append(x.vectors, embeddings[i])
		x.records = append(x.records, &models.VectorRecord{
			VectorID: id,
			Text:     text,
			Metadata: metadataList[i],
		})
		ids[i] = id
	}
	return ids, nil
}

// Search embeds the query and returns up to k records ranked by ascending
// distance, keeping only those whose metadata matches filter. A nil filter
// matches everything. Searching an empty index returns an empty slice.
func (x *FlatIndex) Search(ctx context.Context, query string, k int, filter Filter) ([]*models.SearchResult, error) {
	if k <= 0 {
		return []*models.SearchResult{}, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.vectors) == 0 {
		return []*models.SearchResult{}, nil
	}

	queryVec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVec) != x.dimensions {
		return nil, fmt.Errorf("query embedding has dimension %d, index expects %d", len(queryVec), x.dimensions)
	}

	// Rank every vector, then walk the ranking until k filter matches are
	// found. The walk over the full ranking stands in for over-fetching:
	// however selective the filter, matches are never missed.
	type ranked struct {
		id       int
		distance float64
	}
	order := make([]ranked, len(x.vectors))
	for i, vec := range x.vectors {
		order[i] = ranked{id: i, distance: squaredL2(queryVec, vec)}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].distance != order[j].distance {
			return order[i].distance < order[j].distance
		}
		return order[i].id < order[j].id
	})

	results := make([]*models.SearchResult, 0, k)
	for _, r := range order {
		record := x.records[r.id]
		if !filter.Matches(record.Metadata) {
			continue
		}
		results = append(results, &models.SearchResult{
			Text:       record.Text,
			Metadata:   record.Metadata,
			Similarity: 1.0 / (1.0 + r.distance),
			Distance:   r.distance,
			VectorID:   r.id,
		})
		if len(results) == k {
			break
		}
	}
	return results, nil
}

// Get returns the record with the given vector ID.
func (x *FlatIndex) Get(id int) (*models.VectorRecord, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if id < 0 || id >= len(x.records) {
		return nil, false
	}
	return x.records[id], true
}

// Stats returns the index size.
func (x *FlatIndex) Stats() IndexStats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return IndexStats{
		TotalVectors: len(x.vectors),
		Dimensions:   x.dimensions,
	}
}

// Size returns the number of vectors in the index.
func (x *FlatIndex) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

// Dimensions returns the vector dimension.
func (x *FlatIndex) Dimensions() int {
	return x.dimensions
}

// snapshot returns the current vectors and records under the read lock. The
// returned slices are copies of the headers; vectors and records themselves
// are immutable once added.
func (x *FlatIndex) snapshot() ([][]float32, []*models.VectorRecord) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	vectors := make([][]float32, len(x.vectors))
	copy(vectors, x.vectors)
	records := make([]*models.VectorRecord, len(x.records))
	copy(records, x.records)
	return vectors, records
}

// restore replaces the index contents wholesale.
func (x *FlatIndex) restore(vectors [][]float32, records []*models.VectorRecord) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.vectors = vectors
	x.records = records
}

// squaredL2 returns the squared Euclidean distance between two vectors of
// equal length.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
