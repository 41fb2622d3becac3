// Package rag orchestrates retrieval-augmented answering: per-model-type
// pipelines of embedder, vector index and generator.
package rag

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/errs"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/pkg/utils"
)

// pipeline bundles the components serving one model type.
type pipeline struct {
	embedder  embedding.Embedder
	generator generation.Generator
	index     vector.Index
}

// Service answers questions over the corpus. Pipelines are built lazily on
// the first question per model type: concurrent first questions for the same
// type share a single build, and a failed build leaves nothing cached so the
// next question retries from scratch.
type Service struct {
	cfg    *config.Config
	logger *zap.Logger

	mu        sync.RWMutex
	pipelines map[models.ModelType]*pipeline
	group     singleflight.Group

	// Component factories, replaceable in tests.
	newEmbedder  func(m models.ModelType) (embedding.Embedder, error)
	newGenerator func(m models.ModelType) (generation.Generator, error)
	newIndex     func(ctx context.Context, m models.ModelType, emb embedding.Embedder) (vector.Index, error)
}

// NewService creates a service with no pipelines built yet.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	s := &Service{
		cfg:       cfg,
		logger:    logger,
		pipelines: make(map[models.ModelType]*pipeline),
	}
	s.newEmbedder = s.defaultEmbedder
	s.newGenerator = s.defaultGenerator
	s.newIndex = s.defaultIndex
	return s
}

func (s *Service) providerConfig(m models.ModelType) config.ProviderConfig {
	if m.Provider() == "upstage" {
		return s.cfg.Upstage
	}
	return s.cfg.OpenAI
}

func (s *Service) defaultEmbedder(m models.ModelType) (embedding.Embedder, error) {
	cfg := s.providerConfig(m)
	var (
		emb embedding.Embedder
		err error
	)
	if m.Provider() == "upstage" {
		emb, err = embedding.NewUpstageEmbedder(cfg)
	} else {
		emb, err = embedding.NewOpenAIEmbedder(cfg)
	}
	if err != nil {
		return nil, err
	}
	return embedding.NewCachedEmbedder(emb, s.cfg.Retrieval.QueryCacheSize), nil
}

func (s *Service) defaultGenerator(m models.ModelType) (generation.Generator, error) {
	return generation.NewChatGenerator(m.Provider(), s.providerConfig(m))
}

func (s *Service) defaultIndex(ctx context.Context, m models.ModelType, emb embedding.Embedder) (vector.Index, error) {
	if m.Backend() == "qdrant" {
		collection := s.cfg.Qdrant.CollectionOpenAI
		if m.Provider() == "upstage" {
			collection = s.cfg.Qdrant.CollectionUpstage
		}
		return vector.NewQdrantIndex(s.cfg.Qdrant.Addr, s.cfg.Qdrant.APIKeyEnv, collection)
	}
	idx := vector.NewMemoryIndex(emb.Dimensions())
	ix := indexer.NewIndexer(emb, idx, s.cfg.Chunking, indexer.WithLogger(s.logger))
	if _, err := ix.IndexFile(ctx, s.cfg.Corpus.Path); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *Service) build(ctx context.Context, m models.ModelType) (*pipeline, error) {
	emb, err := s.newEmbedder(m)
	if err != nil {
		return nil, err
	}
	gen, err := s.newGenerator(m)
	if err != nil {
		emb.Close()
		return nil, err
	}
	idx, err := s.newIndex(ctx, m, emb)
	if err != nil {
		emb.Close()
		return nil, err
	}
	size, _ := idx.Size(ctx)
	s.logger.Info("pipeline initialized",
		zap.String("model", string(m)),
		zap.String("backend", m.Backend()),
		zap.Int("vectors", size))
	return &pipeline{embedder: emb, generator: gen, index: idx}, nil
}

// pipelineFor returns the cached pipeline for m, building it under a
// single-flight guard when missing.
func (s *Service) pipelineFor(ctx context.Context, m models.ModelType) (*pipeline, error) {
	s.mu.RLock()
	p := s.pipelines[m]
	s.mu.RUnlock()
	if p != nil {
		return p, nil
	}
	v, err, _ := s.group.Do(string(m), func() (interface{}, error) {
		s.mu.RLock()
		p := s.pipelines[m]
		s.mu.RUnlock()
		if p != nil {
			return p, nil
		}
		built, err := s.build(ctx, m)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.pipelines[m] = built
		s.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipeline), nil
}

// Warmup builds pipelines ahead of the first question.
func (s *Service) Warmup(ctx context.Context, types ...models.ModelType) error {
	for _, m := range types {
		if _, err := s.pipelineFor(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Initialized reports which model types have a ready pipeline.
func (s *Service) Initialized() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(models.SupportedModels()))
	for _, m := range models.SupportedModels() {
		_, ok := s.pipelines[m]
		out[string(m)] = ok
	}
	return out
}

// Ask answers question with the pipeline for model type m: embed the
// question, retrieve the top-k chunks, assemble the prompt and generate.
// Sources carry a short preview of each retrieved chunk in rank order.
func (s *Service) Ask(ctx context.Context, question string, m models.ModelType) (*models.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errs.Validation("question must not be empty")
	}
	p, err := s.pipelineFor(ctx, m)
	if err != nil {
		return nil, err
	}
	qvec, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}
	hits, err := p.index.Search(ctx, qvec, s.cfg.Retrieval.TopK)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(hits))
	sources := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Chunk.Text
		sources[i] = utils.Truncate(h.Chunk.Text, s.cfg.Retrieval.SourcePreviewLen)
	}
	prompt := buildPrompt(strings.Join(texts, "\n\n"), question)

	answer, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("question answered",
		zap.String("model", string(m)),
		zap.Int("retrieved", len(hits)))
	return &models.Answer{Answer: answer, Sources: sources}, nil
}

// Close releases all built pipelines.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for m, p := range s.pipelines {
		p.embedder.Close()
		p.index.Close()
		delete(s.pipelines, m)
	}
}
