// Package indexer provides corpus chunking and index building.
package indexer

import (
	"github.com/hyperjump/kotae/internal/fileid"
	"github.com/hyperjump/kotae/internal/models"
)

// Chunker splits text into overlapping rune-based chunks.
//
// Each chunk holds at most chunkSize runes; every chunk after the first
// starts with the last chunkOverlap runes of the previous one, preserving
// reading order. No runes are dropped: stripping the overlaps and
// concatenating reconstructs the source exactly.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given size and overlap (in runes).
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Chunk splits text into chunks with overlapping windows.
// Empty input yields no chunks (not an error).
func (c *Chunker) Chunk(source, text string) []*models.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = 1
	}
	docID := fileid.DocID(source)
	chunks := make([]*models.Chunk, 0, (len(runes)+step-1)/step)
	index := 0
	for i := 0; i < len(runes); i += step {
		end := i + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, &models.Chunk{
			ID:     fileid.ChunkID(docID, index),
			Source: source,
			Text:   string(runes[i:end]),
			Index:  index,
			Metadata: map[string]string{
				"source": source,
			},
		})
		index++
		if end >= len(runes) {
			break
		}
	}
	return chunks
}
