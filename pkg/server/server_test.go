package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/repository"
	"github.com/m-mizutani/aiforge/pkg/server"
	"github.com/m-mizutani/aiforge/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/genai"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// staticVerifier resolves fixed tokens to owner IDs
type staticVerifier struct {
	tokens map[string]string
}

func (v *staticVerifier) Verify(ctx context.Context, token string) (string, error) {
	if ownerID, ok := v.tokens[token]; ok {
		return ownerID, nil
	}
	return "", goerr.New("invalid credential", goerr.T(model.ErrTagUnauthorized))
}

type mockGemini struct {
	calls        int
	generateFunc func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, contents, config)
	}
	return nil, errors.New("not implemented")
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func echoGemini() *mockGemini {
	return &mockGemini{
		generateFunc: func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			last := contents[len(contents)-1]
			text := ""
			for _, part := range last.Parts {
				text += part.Text
			}
			if strings.Contains(text, "title generation expert") {
				return textResponse("A Title"), nil
			}
			return textResponse("echo: " + text), nil
		},
	}
}

type testServer struct {
	handler http.Handler
	repo    *repository.Memory
	gemini  *mockGemini
}

func newTestServer() *testServer {
	repo := repository.NewMemory()
	gemini := echoGemini()
	verifier := &staticVerifier{tokens: map[string]string{
		"token-alice": "alice",
		"token-bob":   "bob",
	}}

	srv := server.New(usecase.New(repo, gemini), verifier)
	return &testServer{
		handler: srv.Handler(),
		repo:    repo,
		gemini:  gemini,
	}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/chat", "", map[string]string{"prompt": "hi"})
	gt.Equal(t, rec.Code, http.StatusUnauthorized)

	rec = ts.request(t, http.MethodPost, "/chat", "bad-token", map[string]string{"prompt": "hi"})
	gt.Equal(t, rec.Code, http.StatusUnauthorized)

	// No provider call happens for unauthorized requests
	gt.Equal(t, ts.gemini.calls, 0)
}

func TestChatMissingPrompt(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{})
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestChatRoundTrip(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "Hello"})
	gt.Equal(t, rec.Code, http.StatusOK)

	first := decode[struct {
		Text   string `json:"text"`
		ChatID string `json:"chatId"`
	}](t, rec)
	gt.NotEqual(t, first.ChatID, "")
	gt.S(t, first.Text).Contains("Hello")

	rec = ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{
		"prompt": "How are you?",
		"chatId": first.ChatID,
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	second := decode[struct {
		Text   string `json:"text"`
		ChatID string `json:"chatId"`
	}](t, rec)
	gt.Equal(t, second.ChatID, first.ChatID)

	rec = ts.request(t, http.MethodGet, "/history/"+first.ChatID+"?type=chat", "token-alice", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	record := decode[model.Record](t, rec)
	gt.A(t, record.Turns).Length(4)
	gt.Equal(t, record.Turns[0].Text, "Hello")
	gt.Equal(t, record.Turns[2].Text, "How are you?")
}

func TestChatUpstreamFailure(t *testing.T) {
	ts := newTestServer()
	ts.gemini.generateFunc = func(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("provider down")
	}

	rec := ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "Hello"})
	gt.Equal(t, rec.Code, http.StatusInternalServerError)

	body := decode[map[string]string](t, rec)
	gt.Equal(t, body["error"], "internal server error")
}

func TestCodeEndpoint(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/code", "token-alice", map[string]string{"prompt": "fizzbuzz"})
	gt.Equal(t, rec.Code, http.StatusOK)

	out := decode[struct {
		Code   string `json:"code"`
		ChatID string `json:"chatId"`
	}](t, rec)
	gt.NotEqual(t, out.ChatID, "")
	gt.NotEqual(t, out.Code, "")
}

func TestImageEndpointRejectsBadPayload(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/image", "token-alice", map[string]string{
		"prompt": "what is this?",
		"image":  "not-a-data-url",
	})
	gt.Equal(t, rec.Code, http.StatusBadRequest)
	gt.Equal(t, ts.gemini.calls, 0)
}

func TestOptimizeEndpoint(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/optimize-prompt", "token-alice", map[string]string{
		"prompt":    "write a poem",
		"modelType": "unknown-value",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	out := decode[map[string]string](t, rec)
	gt.NotEqual(t, out["text"], "")
}

func TestUserStats(t *testing.T) {
	ts := newTestServer()

	ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "hi"})
	ts.request(t, http.MethodPost, "/code", "token-alice", map[string]string{"prompt": "fizzbuzz"})
	ts.request(t, http.MethodPost, "/code", "token-bob", map[string]string{"prompt": "other"})

	rec := ts.request(t, http.MethodGet, "/user-stats", "token-alice", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	stats := decode[model.UsageStats](t, rec)
	gt.Equal(t, stats.ChatCount, 1)
	gt.Equal(t, stats.CodeCount, 1)
	gt.Equal(t, stats.ImageCount, 0)
	gt.Equal(t, stats.OptimizerCount, 0)
}

func TestHistoryOwnerIsolation(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "secret"})
	out := decode[struct {
		ChatID string `json:"chatId"`
	}](t, rec)

	rec = ts.request(t, http.MethodGet, "/history/"+out.ChatID+"?type=chat", "token-bob", nil)
	gt.Equal(t, rec.Code, http.StatusNotFound)

	rec = ts.request(t, http.MethodPost, "/history/delete", "token-bob", map[string]string{
		"id":   out.ChatID,
		"type": "chat",
	})
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestHistoryListLimit(t *testing.T) {
	ts := newTestServer()

	for i := 0; i < 6; i++ {
		ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "hi"})
	}

	rec := ts.request(t, http.MethodGet, "/history?type=chat&limit=4", "token-alice", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	out := decode[struct {
		Records []*model.Record `json:"records"`
	}](t, rec)
	gt.A(t, out.Records).Length(4)
}

func TestHistoryRenameAndDelete(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodPost, "/chat", "token-alice", map[string]string{"prompt": "hi"})
	out := decode[struct {
		ChatID string `json:"chatId"`
	}](t, rec)

	rec = ts.request(t, http.MethodPost, "/history/rename", "token-alice", map[string]string{
		"id":    out.ChatID,
		"type":  "chat",
		"title": "renamed",
	})
	gt.Equal(t, rec.Code, http.StatusNoContent)

	rec = ts.request(t, http.MethodGet, "/history/"+out.ChatID+"?type=chat", "token-alice", nil)
	record := decode[model.Record](t, rec)
	gt.Equal(t, record.Title, "renamed")

	rec = ts.request(t, http.MethodPost, "/history/delete", "token-alice", map[string]string{
		"id":   out.ChatID,
		"type": "chat",
	})
	gt.Equal(t, rec.Code, http.StatusNoContent)

	rec = ts.request(t, http.MethodGet, "/history/"+out.ChatID+"?type=chat", "token-alice", nil)
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestHistoryInvalidKind(t *testing.T) {
	ts := newTestServer()

	rec := ts.request(t, http.MethodGet, "/history?type=music", "token-alice", nil)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}
