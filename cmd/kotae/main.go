// Package main is the kotae CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/internal/watcher"
	"github.com/hyperjump/kotae/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. When neither exists, built-in defaults apply. Returns the config
// and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// Provider keys commonly live in a .env during development. Missing file
	// is fine; the environment wins either way.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "index":
		runIndex()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	warmup := fs.String("warmup", "", "comma-separated model types to build before serving (e.g. openai,upstage)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("corpus", cfg.Corpus.Path),
		zap.Bool("debug", debugMode),
	)

	svc := rag.NewService(cfg, logger)
	defer svc.Close()

	if *warmup != "" {
		var types []models.ModelType
		for _, raw := range strings.Split(*warmup, ",") {
			m, ok := models.ParseModelType(strings.TrimSpace(raw))
			if !ok {
				logger.Fatal("unknown model type in -warmup", zap.String("value", raw))
			}
			types = append(types, m)
		}
		if err := svc.Warmup(context.Background(), types...); err != nil {
			logger.Fatal("warmup failed", zap.Error(err))
		}
	}

	srv := server.NewServer(svc, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildAskQuery joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildAskQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = answer in-process without a running server)")
	modelType := fs.String("model", "", "model type: openai, upstage, openai-qdrant, upstage-qdrant (default openai)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	question := buildAskQuery(fs.Args())
	if question == "" {
		fmt.Fprintln(os.Stderr, "Usage: kotae ask [flags] <question>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	model, ok := models.ParseModelType(*modelType)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown model type %q; supported: %v\n", *modelType, models.SupportedModels())
		os.Exit(1)
	}
	format := cli.OutputFormat(*outputFormat)
	if format != cli.OutputText && format != cli.OutputJSON {
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	var answer *models.Answer
	var err error
	if *serverURL != "" {
		answer, err = askViaHTTP(*serverURL, question, model)
	} else {
		answer, err = askDirect(*configPath, question, model)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAnswer(os.Stdout, answer, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// askViaHTTP posts the question to a running server's chat endpoint.
func askViaHTTP(serverURL, question string, model models.ModelType) (*models.Answer, error) {
	payload, err := json.Marshal(models.ChatRequest{Query: question, ModelType: string(model)})
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Post(strings.TrimRight(serverURL, "/")+"/api/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s", apiErr.Error)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	var answer models.Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// askDirect answers in-process, building the pipeline locally.
func askDirect(configPath, question string, model models.ModelType) (*models.Answer, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	svc := rag.NewService(cfg, logger)
	defer svc.Close()
	return svc.Ask(context.Background(), question, model)
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	provider := fs.String("provider", "openai", "embedding provider: openai or upstage")
	collection := fs.String("collection", "", "Qdrant collection name (default from config per provider)")
	watch := fs.Bool("watch", false, "keep running and re-index when the corpus file changes")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var (
		emb            embedding.Embedder
		collectionName string
	)
	switch *provider {
	case "openai":
		emb, err = embedding.NewOpenAIEmbedder(cfg.OpenAI)
		collectionName = cfg.Qdrant.CollectionOpenAI
	case "upstage":
		emb, err = embedding.NewUpstageEmbedder(cfg.Upstage)
		collectionName = cfg.Qdrant.CollectionUpstage
	default:
		fmt.Fprintf(os.Stderr, "Unknown provider %q; use openai or upstage\n", *provider)
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("Failed to create embedder", zap.Error(err))
	}
	defer emb.Close()
	if *collection != "" {
		collectionName = *collection
	}

	idx, err := vector.NewQdrantIndex(cfg.Qdrant.Addr, cfg.Qdrant.APIKeyEnv, collectionName)
	if err != nil {
		logger.Fatal("Failed to connect to Qdrant", zap.Error(err))
	}
	defer idx.Close()

	ctx := context.Background()
	if err := idx.EnsureCollection(ctx, emb.Dimensions()); err != nil {
		logger.Fatal("Failed to ensure collection", zap.Error(err))
	}

	ix := indexer.NewIndexer(emb, idx, cfg.Chunking, indexer.WithLogger(logger))
	reindex := func() {
		n, err := ix.IndexFile(ctx, cfg.Corpus.Path)
		if err != nil {
			logger.Error("indexing failed", zap.String("path", cfg.Corpus.Path), zap.Error(err))
			return
		}
		fmt.Printf("Indexed %d chunks from %s into %q (%s)\n", n, cfg.Corpus.Path, collectionName, *provider)
	}

	logger.Info("indexing corpus",
		zap.String("config_path", resolvedConfigPath),
		zap.String("corpus", cfg.Corpus.Path),
		zap.String("collection", collectionName),
	)
	reindex()

	if !*watch {
		return
	}
	w := watcher.New(cfg.Corpus.Path, reindex, watcher.WithLogger(logger))
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := w.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Stopping watch...")
}

func printUsage() {
	fmt.Println(`kotae - question answering over a document corpus

Usage:
  kotae <command> [flags]

Commands:
  server    Start the HTTP API server
  ask       Ask a question (via a running server, or in-process with -server "")
  index     Embed the corpus into a Qdrant collection (offline, requires API keys)
  version   Print version
  help      Show this help

Examples:
  kotae server -config config.yaml
  kotae server -warmup openai,upstage
  kotae ask 대한민국의 수도는?
  kotae ask -model upstage -output json "수도는 어디인가요?"
  kotae index -provider openai -watch`)
}
