// Package generation wraps hosted chat-completion providers.
package generation

import "context"

// Generator produces a completion for a fully rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier.
	Name() string
}
