package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/errs"
	"github.com/hyperjump/kotae/internal/models"
)

type stubService struct {
	answer    *models.Answer
	err       error
	lastQuery string
	lastModel models.ModelType
}

func (s *stubService) Ask(_ context.Context, question string, m models.ModelType) (*models.Answer, error) {
	s.lastQuery = question
	s.lastModel = m
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func (s *stubService) Initialized() map[string]bool {
	return map[string]bool{"openai": true}
}

func newTestServer(stub *stubService) *Server {
	return NewServer(stub, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

func postChat(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHandleChat_Success(t *testing.T) {
	stub := &stubService{answer: &models.Answer{
		Answer:  "서울입니다.",
		Sources: []string{"대한민국의 수도는 서울이다..."},
	}}
	srv := newTestServer(stub)

	rec := postChat(t, srv.Router(), `{"query":"대한민국의 수도는?","modelType":"upstage"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var ans models.Answer
	if err := json.Unmarshal(rec.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if ans.Answer != "서울입니다." {
		t.Errorf("answer = %q", ans.Answer)
	}
	if len(ans.Sources) != 1 {
		t.Errorf("sources = %v", ans.Sources)
	}
	if stub.lastModel != models.ModelUpstage {
		t.Errorf("model passed through = %q", stub.lastModel)
	}
	if stub.lastQuery != "대한민국의 수도는?" {
		t.Errorf("query passed through = %q", stub.lastQuery)
	}
}

func TestHandleChat_DefaultModelType(t *testing.T) {
	stub := &stubService{answer: &models.Answer{Answer: "x", Sources: []string{}}}
	srv := newTestServer(stub)

	rec := postChat(t, srv.Router(), `{"query":"질문"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastModel != models.ModelOpenAI {
		t.Errorf("omitted modelType should default to openai, got %q", stub.lastModel)
	}
}

func TestHandleChat_EmptyQuery(t *testing.T) {
	srv := newTestServer(&stubService{})
	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   "}`} {
		rec := postChat(t, srv.Router(), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, rec.Code)
		}
		if got := errorMessage(t, rec); got != "질문을 입력해주세요." {
			t.Errorf("body %s: error = %q", body, got)
		}
	}
}

func TestHandleChat_UnsupportedModelType(t *testing.T) {
	srv := newTestServer(&stubService{})
	rec := postChat(t, srv.Router(), `{"query":"질문","modelType":"claude"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := errorMessage(t, rec); !strings.Contains(got, "지원하지 않는 모델 타입") {
		t.Errorf("error = %q", got)
	}
}

func TestHandleChat_InvalidBody(t *testing.T) {
	srv := newTestServer(&stubService{})
	rec := postChat(t, srv.Router(), `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleChat_CredentialError(t *testing.T) {
	srv := newTestServer(&stubService{err: errs.Credential("upstage", "missing API key")})
	rec := postChat(t, srv.Router(), `{"query":"질문","modelType":"upstage"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := errorMessage(t, rec); !strings.Contains(got, "Upstage API 키") {
		t.Errorf("error should name the provider key, got %q", got)
	}
}

func TestHandleChat_UpstreamError(t *testing.T) {
	srv := newTestServer(&stubService{err: errs.UpstreamStatus("openai", 500, "server exploded")})
	rec := postChat(t, srv.Router(), `{"query":"질문"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "답변 생성 중 오류가 발생했습니다." {
		t.Errorf("error = %q", got)
	}
	if strings.Contains(rec.Body.String(), "exploded") {
		t.Error("upstream details must not leak to the client")
	}
}

func TestHandleChatStatus(t *testing.T) {
	srv := newTestServer(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Status          string          `json:"status"`
		SupportedModels []string        `json:"supportedModels"`
		Initialized     map[string]bool `json:"initialized"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
	if len(body.SupportedModels) != 4 {
		t.Errorf("supportedModels = %v", body.SupportedModels)
	}
	if !body.Initialized["openai"] {
		t.Errorf("initialized = %v", body.Initialized)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
