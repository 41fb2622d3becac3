// Package models defines core data structures for chunks, retrieval results, and answers.
package models

// Chunk is a bounded piece of the corpus document, the unit of retrieval.
// Chunks are immutable once created; their order within the source document
// does not matter for retrieval (results are similarity-ranked at query time).
type Chunk struct {
	ID       string            `json:"id"`
	Source   string            `json:"source"`
	Text     string            `json:"text"`
	Index    int               `json:"index"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ScoredChunk is a single retrieval hit: a chunk with its similarity score.
type ScoredChunk struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}
