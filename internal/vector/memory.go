package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// MemoryIndex is an in-process, ephemeral vector index. Vectors are
// L2-normalized on insert and query, so the dot product is the cosine
// similarity. Contents do not survive a restart.
type MemoryIndex struct {
	mu         sync.RWMutex
	dimensions int
	chunks     []*models.Chunk
	vectors    [][]float32
}

// NewMemoryIndex creates an empty index for vectors of the given
// dimensionality.
func NewMemoryIndex(dimensions int) *MemoryIndex {
	return &MemoryIndex{dimensions: dimensions}
}

// Add stores chunks with their vectors, normalizing each vector in place.
func (m *MemoryIndex) Add(_ context.Context, chunks []*models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	for i, v := range vectors {
		if len(v) != m.dimensions {
			return fmt.Errorf("vector %d has dimension %d, index expects %d", i, len(v), m.dimensions)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range chunks {
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		utils.NormalizeL2(vec)
		m.chunks = append(m.chunks, chunks[i])
		m.vectors = append(m.vectors, vec)
	}
	return nil
}

// Search returns the k nearest chunks by cosine similarity. Ties keep
// insertion order. Fewer than k stored vectors return all of them.
func (m *MemoryIndex) Search(_ context.Context, query []float32, k int) ([]*models.ScoredChunk, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query has dimension %d, index expects %d", len(query), m.dimensions)
	}
	q := make([]float32, len(query))
	copy(q, query)
	utils.NormalizeL2(q)

	m.mu.RLock()
	defer m.mu.RUnlock()
	scored := make([]*models.ScoredChunk, len(m.chunks))
	for i, vec := range m.vectors {
		var dot float64
		for j := range vec {
			dot += float64(vec[j]) * float64(q[j])
		}
		scored[i] = &models.ScoredChunk{Chunk: m.chunks[i], Score: dot}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	if k > len(scored) {
		k = len(scored)
	}
	if k < 0 {
		k = 0
	}
	return scored[:k], nil
}

// Size returns the number of stored vectors.
func (m *MemoryIndex) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks), nil
}

// Reset drops all stored vectors, keeping the dimensionality.
func (m *MemoryIndex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = nil
	m.vectors = nil
}

// Close is a no-op for the in-memory index.
func (m *MemoryIndex) Close() error { return nil }
