package indexer

import (
	"context"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/vector"
)

const defaultBatchSize = 64

// Indexer reads a corpus file, chunks it, embeds the chunks and stores them
// in a vector index. It drives both the lazy in-memory build on the request
// path and the offline Qdrant population command.
type Indexer struct {
	chunker   *Chunker
	embedder  embedding.Embedder
	index     vector.Index
	batchSize int
	logger    *zap.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(ix *Indexer) { ix.logger = logger }
}

// WithBatchSize caps how many chunks are embedded per provider call. The
// Upstage embedder degrades batches to sequential requests internally, so
// this only bounds memory there.
func WithBatchSize(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.batchSize = n
		}
	}
}

// NewIndexer creates an indexer writing into idx through emb.
func NewIndexer(emb embedding.Embedder, idx vector.Index, chunking config.ChunkingConfig, opts ...Option) *Indexer {
	ix := &Indexer{
		chunker:   NewChunker(chunking.ChunkSize, chunking.ChunkOverlap),
		embedder:  emb,
		index:     idx,
		batchSize: defaultBatchSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// IndexFile loads, chunks, embeds and stores one corpus file, returning the
// number of chunks indexed. An empty file indexes zero chunks and is not an
// error.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	text, err := extract.ReadFile(path)
	if err != nil {
		return 0, err
	}
	chunks := ix.chunker.Chunk(path, text)
	if len(chunks) == 0 {
		ix.logger.Warn("corpus file produced no chunks", zap.String("path", path))
		return 0, nil
	}
	for start := 0; start < len(chunks); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		texts := make([]string, len(batch))
		for i, ch := range batch {
			texts[i] = ch.Text
		}
		vecs, err := ix.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return 0, err
		}
		if err := ix.index.Add(ctx, batch, vecs); err != nil {
			return 0, err
		}
	}
	ix.logger.Info("indexed corpus file",
		zap.String("path", path),
		zap.Int("chunks", len(chunks)),
		zap.String("embedder", ix.embedder.Name()))
	return len(chunks), nil
}
