package embedding

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/errs"
)

// OpenAIEmbedder embeds text through the OpenAI embeddings endpoint.
// The endpoint is batch-capable: EmbedDocuments issues a single request.
type OpenAIEmbedder struct {
	client     openai.Client
	model      string
	dimensions int
}

// NewOpenAIEmbedder creates an embedder from the provider config. The API key
// is read from the configured environment variable at construction time; a
// missing key is a credential error.
func NewOpenAIEmbedder(cfg config.ProviderConfig) (*OpenAIEmbedder, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, errs.Credential("openai", "missing API key in env "+cfg.APIKeyEnv)
	}
	// The pipeline has no retry anywhere; disable the SDK's built-in retries.
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIEmbedder{
		client:     openai.NewClient(opts...),
		model:      cfg.EmbeddingModel,
		dimensions: cfg.Dimensions,
	}, nil
}

// EmbedQuery embeds a single query string.
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		return nil, errs.FromAPI("openai", err)
	}
	if len(resp.Data) == 0 {
		return nil, errs.UpstreamStatus("openai", 0, "no embedding in response")
	}
	return toFloat32(resp.Data[0].Embedding), nil
}

// EmbedDocuments embeds all texts in one batch request.
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, errs.FromAPI("openai", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errs.UpstreamStatus("openai", 0,
			fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Data)))
	}
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(out) {
			return nil, errs.UpstreamStatus("openai", 0, fmt.Sprintf("embedding index %d out of range", d.Index))
		}
		out[d.Index] = toFloat32(d.Embedding)
	}
	return out, nil
}

// Dimensions returns the configured embedding dimensionality.
func (e *OpenAIEmbedder) Dimensions() int { return e.dimensions }

// Name returns the provider identifier.
func (e *OpenAIEmbedder) Name() string { return "openai" }

// Close is a no-op for the hosted client.
func (e *OpenAIEmbedder) Close() error { return nil }
