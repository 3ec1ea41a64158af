// Package embedding turns filing text into fixed-dimension vectors, via ONNX
// Runtime when built with CGO and via a deterministic mock otherwise.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations report a
// fixed dimension; every vector they return has exactly that length.
type Embedder interface {
	// Embed returns the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one embedding per input text, in input order. On
	// error no partial results are returned.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the length of every vector this embedder produces.
	Dimensions() int
	Close() error
}
