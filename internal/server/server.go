// Package server provides the HTTP API for kotae.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
)

// AnswerService is the part of the RAG service the HTTP layer depends on.
type AnswerService interface {
	Ask(ctx context.Context, question string, m models.ModelType) (*models.Answer, error)
	Initialized() map[string]bool
}

// Server is the HTTP server exposing the chat API.
type Server struct {
	rag    AnswerService
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates an HTTP server around the answer service.
func NewServer(rag AnswerService, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{rag: rag, config: cfg, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Generation calls can take a while; this bounds the whole request.
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/chat", s.handleChatStatus)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start begins listening. Blocks until the listener fails or Stop is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
