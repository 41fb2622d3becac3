package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEmbedder generates deterministic pseudo-embeddings without any network
// dependency. The same text always maps to the same unit vector, and similar
// call sites can rely on that for retrieval tests.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder creates a mock embedder with the given dimensionality.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	return &MockEmbedder{dimensions: dimensions}
}

// EmbedQuery generates a deterministic vector from the text hash.
func (m *MockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, m.dimensions)
	var norm float64
	for i := range vec {
		v := math.Sin(float64(seed%1000)*0.1 + float64(i)*0.01)
		vec[i] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// EmbedDocuments embeds each text independently.
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the mock dimensionality.
func (m *MockEmbedder) Dimensions() int { return m.dimensions }

// Name returns "mock".
func (m *MockEmbedder) Name() string { return "mock" }

// Close is a no-op.
func (m *MockEmbedder) Close() error { return nil }
