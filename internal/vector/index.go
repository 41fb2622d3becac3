// Package vector provides similarity indexes over embedded chunks.
package vector

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// Index stores (chunk, vector) pairs and answers top-k similarity queries.
//
// All vectors in one index come from a single embedding provider; mixing
// providers in one index is a caller error and is not defended against.
type Index interface {
	// Add stores chunks with their vectors. chunks and vectors are parallel.
	Add(ctx context.Context, chunks []*models.Chunk, vectors [][]float32) error
	// Search returns up to k chunks ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]*models.ScoredChunk, error)
	// Size returns the number of stored vectors.
	Size(ctx context.Context) (int, error)
	Close() error
}
