package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gemini-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	resp  domain.Response
	err   error
	calls []domain.GenerateRequest
}

func (s *stubExecutor) Execute(_ context.Context, req domain.GenerateRequest) (domain.Response, error) {
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

func post(h http.HandlerFunc, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleGenerate_Success(t *testing.T) {
	exec := &stubExecutor{resp: domain.Response{Field: "articleText", Text: "<p>內容</p>"}}
	h := NewHandler(exec, 1<<20)

	rec := post(h.HandleGenerate, "application/json; charset=utf-8",
		`{"task":"generate_article","apiKey":"k","title":"Go","useWebSearch":"true"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"articleText": "<p>內容</p>"}, decodeBody(t, rec))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "generate_article", exec.calls[0].Task)
	assert.True(t, bool(exec.calls[0].UseWebSearch))
}

func TestHandleGenerate_TransportRejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"missing content type", "", `{"task":"generate_article"}`},
		{"form content type", "application/x-www-form-urlencoded", "task=generate_article"},
		{"malformed json", "application/json", `{"task":`},
		{"body too large", "application/json", `{"task":"` + strings.Repeat("a", 128) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &stubExecutor{}
			h := NewHandler(exec, 64)

			rec := post(h.HandleGenerate, tt.contentType, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody(t, rec)["error"])
			assert.Empty(t, exec.calls)
		})
	}
}

func TestHandleGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"timeout", domain.NewError(domain.KindTimeout, "Gemini API 請求超時 (300 秒)。"), http.StatusGatewayTimeout, "Gemini API 請求超時 (300 秒)。"},
		{"upstream passthrough", domain.NewUpstreamRejected(429, "Resource exhausted"), 429, "Resource exhausted"},
		{"unknown task", domain.NewError(domain.KindUnknownTask, "錯誤：未知的任務類型。"), http.StatusBadRequest, "錯誤：未知的任務類型。"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "伺服器內部錯誤。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubExecutor{err: tt.err}, 1<<20)

			rec := post(h.HandleGenerate, "application/json", `{"task":"generate_article","apiKey":"k","title":"t"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, map[string]string{"error": tt.wantMsg}, decodeBody(t, rec))
		})
	}
}

func TestOptions(t *testing.T) {
	h := NewHandler(&stubExecutor{}, 1<<20)
	rec := httptest.NewRecorder()
	h.Options(rec, httptest.NewRequest(http.MethodOptions, "/api", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestAPIOptions(t *testing.T) {
	h := NewHandler(&stubExecutor{}, 1<<20)
	rec := httptest.NewRecorder()
	h.APIOptions(rec, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got apiOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.TaskKinds(), got.Tasks)
	assert.Contains(t, got.Models, domain.DefaultModel)
	assert.Equal(t, domain.DefaultModel, got.DefaultModel)
	assert.Equal(t, domain.LanguageAuto, got.DefaultLanguage)
}

func TestHealthz(t *testing.T) {
	h := NewHandler(&stubExecutor{}, 1<<20)
	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decodeBody(t, rec))
}
