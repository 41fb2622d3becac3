package generation

import (
	"context"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/errs"
)

// ChatGenerator calls an OpenAI-compatible chat-completions endpoint. Both
// OpenAI and Upstage are served by this type; Upstage differs only in base
// URL, key and model name.
//
// Temperature is pinned to 0 so identical (prompt, model) pairs produce
// near-deterministic answers.
type ChatGenerator struct {
	client   openai.Client
	model    string
	provider string
}

// NewChatGenerator creates a generator for the given provider config. The API
// key is read from the configured environment variable; a missing key is a
// credential error.
func NewChatGenerator(provider string, cfg config.ProviderConfig) (*ChatGenerator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, errs.Credential(provider, "missing API key in env "+cfg.APIKeyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &ChatGenerator{
		client:   openai.NewClient(opts...),
		model:    cfg.ChatModel,
		provider: provider,
	}, nil
}

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", errs.FromAPI(g.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.UpstreamStatus(g.provider, 0, "no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Name returns the provider identifier.
func (g *ChatGenerator) Name() string { return g.provider }
