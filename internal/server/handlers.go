package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/errs"
	"github.com/hyperjump/kotae/internal/models"
)

// User-facing messages. The API answers in Korean.
const (
	msgInvalidBody      = "잘못된 요청 형식입니다."
	msgEmptyQuery       = "질문을 입력해주세요."
	msgUnsupportedModel = "지원하지 않는 모델 타입입니다"
	msgGenericFailure   = "답변 생성 중 오류가 발생했습니다."
)

// credentialHint maps a credential failure to a provider-specific message so
// the operator knows which key to fix without reading server logs.
func credentialHint(provider string) string {
	switch provider {
	case "upstage":
		return "Upstage API 키가 설정되지 않았거나 유효하지 않습니다."
	case "qdrant":
		return "Qdrant 연결 정보가 설정되지 않았거나 유효하지 않습니다."
	default:
		return "OpenAI API 키가 설정되지 않았거나 유효하지 않습니다."
	}
}

// handleChat answers POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.respondError(w, http.StatusBadRequest, msgEmptyQuery)
		return
	}
	model, ok := models.ParseModelType(req.ModelType)
	if !ok {
		s.respondError(w, http.StatusBadRequest, msgUnsupportedModel+": "+req.ModelType)
		return
	}

	answer, err := s.rag.Ask(r.Context(), query, model)
	if err != nil {
		s.logger.Error("chat request failed",
			zap.String("model", string(model)),
			zap.Error(err))
		switch errs.KindOf(err) {
		case errs.KindValidation:
			s.respondError(w, http.StatusBadRequest, msgEmptyQuery)
		case errs.KindCredential:
			s.respondError(w, http.StatusInternalServerError, credentialHint(errs.ProviderOf(err)))
		default:
			s.respondError(w, http.StatusInternalServerError, msgGenericFailure)
		}
		return
	}
	s.respondJSON(w, http.StatusOK, answer)
}

// handleChatStatus answers GET /api/chat with a liveness/status payload.
func (s *Server) handleChatStatus(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"supportedModels": models.SupportedModels(),
		"initialized":     s.rag.Initialized(),
	})
}

// handleHealth is a bare liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
