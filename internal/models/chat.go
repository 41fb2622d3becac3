package models

// ModelType selects the (embedding provider, index backend) combination used
// to answer a question. The generation provider follows the embedding provider.
type ModelType string

const (
	// ModelOpenAI uses OpenAI embeddings with the in-process index.
	ModelOpenAI ModelType = "openai"
	// ModelUpstage uses Upstage embeddings with the in-process index.
	ModelUpstage ModelType = "upstage"
	// ModelOpenAIQdrant uses OpenAI embeddings against a pre-populated Qdrant collection.
	ModelOpenAIQdrant ModelType = "openai-qdrant"
	// ModelUpstageQdrant uses Upstage embeddings against a pre-populated Qdrant collection.
	ModelUpstageQdrant ModelType = "upstage-qdrant"
)

// SupportedModels lists all recognized model type selectors.
func SupportedModels() []ModelType {
	return []ModelType{ModelOpenAI, ModelUpstage, ModelOpenAIQdrant, ModelUpstageQdrant}
}

// ParseModelType resolves a request selector to a ModelType.
// An empty selector defaults to ModelOpenAI. Unrecognized selectors return false.
func ParseModelType(s string) (ModelType, bool) {
	if s == "" {
		return ModelOpenAI, true
	}
	for _, m := range SupportedModels() {
		if ModelType(s) == m {
			return m, true
		}
	}
	return "", false
}

// Provider returns the embedding/generation provider name for the model type.
func (m ModelType) Provider() string {
	switch m {
	case ModelUpstage, ModelUpstageQdrant:
		return "upstage"
	default:
		return "openai"
	}
}

// Backend returns the vector index backend name for the model type.
func (m ModelType) Backend() string {
	switch m {
	case ModelOpenAIQdrant, ModelUpstageQdrant:
		return "qdrant"
	default:
		return "memory"
	}
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query     string `json:"query"`
	ModelType string `json:"modelType,omitempty"`
}

// Answer is the result of one Ask call: the generated text plus truncated
// previews of the retrieved chunks, in ranked order.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
