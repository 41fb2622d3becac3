// Package config provides configuration loading and structs for the kotae server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
//
// API keys are never stored in the file; each provider section names the
// environment variable to read, and the variable is read at call time (not
// validated at process start, except by the offline index command).
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	OpenAI    ProviderConfig  `yaml:"openai"`
	Upstage   ProviderConfig  `yaml:"upstage"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig points at the single source document the index is built from.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// ChunkingConfig configures how the corpus is split into chunks.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// RetrievalConfig holds retrieval and answer-assembly settings.
type RetrievalConfig struct {
	TopK             int `yaml:"top_k"`
	SourcePreviewLen int `yaml:"source_preview_len"`
	QueryCacheSize   int `yaml:"query_cache_size"`
}

// ProviderConfig configures one hosted embedding/generation provider.
type ProviderConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	// EmbeddingModel is used for both documents and queries unless a
	// distinct QueryModel is set (Upstage uses separate passage/query models).
	EmbeddingModel string `yaml:"embedding_model"`
	QueryModel     string `yaml:"query_model"`
	ChatModel      string `yaml:"chat_model"`
	Dimensions     int    `yaml:"dimensions"`
}

// QdrantConfig contains connection details for the persistent vector store.
type QdrantConfig struct {
	Addr              string `yaml:"addr"` // gRPC address, e.g. localhost:6334
	APIKeyEnv         string `yaml:"api_key_env"`
	CollectionOpenAI  string `yaml:"collection_openai"`
	CollectionUpstage string `yaml:"collection_upstage"`
}

// Load reads and parses the config file at path, expands the corpus path,
// and applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, filepath.Dir(path))
	return &cfg, nil
}

// Default returns the built-in configuration, used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are left as-is (resolved
// against the working directory by the OS).
func expandPath(path, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
