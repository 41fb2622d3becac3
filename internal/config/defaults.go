package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "data/corpus.txt"
	}
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 1500
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 200
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.SourcePreviewLen == 0 {
		cfg.Retrieval.SourcePreviewLen = 100
	}
	if cfg.Retrieval.QueryCacheSize == 0 {
		cfg.Retrieval.QueryCacheSize = 1000
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.Dimensions == 0 {
		cfg.OpenAI.Dimensions = 1536
	}
	if cfg.Upstage.APIKeyEnv == "" {
		cfg.Upstage.APIKeyEnv = "UPSTAGE_API_KEY"
	}
	if cfg.Upstage.BaseURL == "" {
		cfg.Upstage.BaseURL = "https://api.upstage.ai/v1/solar"
	}
	if cfg.Upstage.EmbeddingModel == "" {
		cfg.Upstage.EmbeddingModel = "solar-embedding-1-large-passage"
	}
	if cfg.Upstage.QueryModel == "" {
		cfg.Upstage.QueryModel = "solar-embedding-1-large-query"
	}
	if cfg.Upstage.ChatModel == "" {
		cfg.Upstage.ChatModel = "solar-1-mini-chat"
	}
	if cfg.Upstage.Dimensions == 0 {
		cfg.Upstage.Dimensions = 4096
	}
	if cfg.Qdrant.Addr == "" {
		cfg.Qdrant.Addr = "localhost:6334"
	}
	if cfg.Qdrant.APIKeyEnv == "" {
		cfg.Qdrant.APIKeyEnv = "QDRANT_API_KEY"
	}
	if cfg.Qdrant.CollectionOpenAI == "" {
		cfg.Qdrant.CollectionOpenAI = "kotae-openai"
	}
	if cfg.Qdrant.CollectionUpstage == "" {
		cfg.Qdrant.CollectionUpstage = "kotae-upstage"
	}
}
