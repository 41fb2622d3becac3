// Package embedding provides hosted text-embedding providers and caching.
package embedding

import "context"

// Embedder produces vector embeddings for text.
//
// Vectors from different providers are not cross-compatible: an index built
// with one embedder must be queried through the same embedder.
type Embedder interface {
	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedDocuments embeds a batch of document texts, one vector per text,
	// in input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the fixed dimensionality of produced vectors.
	Dimensions() int
	// Name returns the provider identifier ("openai", "upstage", ...).
	Name() string
	Close() error
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
