package embedding

import (
	"context"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/errs"
)

// UpstageEmbedder embeds text through the Upstage solar embeddings endpoint
// (OpenAI-compatible request shape, alternate base URL and key). Upstage uses
// distinct models for queries and passages.
//
// The endpoint only accepts a single input per request, so EmbedDocuments
// degrades to sequential single-item calls. This is deliberate policy, not an
// oversight: multi-item batches are rejected upstream.
type UpstageEmbedder struct {
	client       openai.Client
	passageModel string
	queryModel   string
	dimensions   int
}

// NewUpstageEmbedder creates an embedder from the provider config.
func NewUpstageEmbedder(cfg config.ProviderConfig) (*UpstageEmbedder, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, errs.Credential("upstage", "missing API key in env "+cfg.APIKeyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	queryModel := cfg.QueryModel
	if queryModel == "" {
		queryModel = cfg.EmbeddingModel
	}
	return &UpstageEmbedder{
		client:       openai.NewClient(opts...),
		passageModel: cfg.EmbeddingModel,
		queryModel:   queryModel,
		dimensions:   cfg.Dimensions,
	}, nil
}

func (e *UpstageEmbedder) embedOne(ctx context.Context, model, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		return nil, errs.FromAPI("upstage", err)
	}
	if len(resp.Data) == 0 {
		return nil, errs.UpstreamStatus("upstage", 0, "no embedding in response")
	}
	return toFloat32(resp.Data[0].Embedding), nil
}

// EmbedQuery embeds a query string with the query model.
func (e *UpstageEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embedOne(ctx, e.queryModel, text)
}

// EmbedDocuments embeds each text with the passage model, one request per
// text, in order. The first failure aborts the whole batch.
func (e *UpstageEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(ctx, e.passageModel, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the configured embedding dimensionality.
func (e *UpstageEmbedder) Dimensions() int { return e.dimensions }

// Name returns the provider identifier.
func (e *UpstageEmbedder) Name() string { return "upstage" }

// Close is a no-op for the hosted client.
func (e *UpstageEmbedder) Close() error { return nil }
