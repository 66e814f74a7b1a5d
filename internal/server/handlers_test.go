// internal/server/handlers_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"template-forge/internal/common/config"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
	"template-forge/internal/generate"
	"template-forge/internal/publish"
	"template-forge/internal/ratelimit"
)

// ==========================
// Test Helper Functions
// ==========================

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

func newTestRouter(t *testing.T, completer *stubCompleter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	limiter := ratelimit.NewMemory(ratelimit.Config{Window: time.Minute, MaxRequests: 100})
	generator := generate.NewService(limiter, completer, log)

	pubLimiter := ratelimit.NewMemory(ratelimit.Config{Window: time.Minute, MaxRequests: 100})
	publisher := publish.NewService(
		config.GistConfig{APIURL: "http://localhost:1", Token: "t", Timeout: 1000},
		httpclient.NewClient(time.Second), pubLimiter, log)

	return NewRouter(NewHandler(generator, publisher, nil, log), log)
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ==========================
// Endpoint Tests
// ==========================

func TestGenerateEndpoint_Success(t *testing.T) {
	completer := &stubCompleter{
		reply: `{"title":"Daily Planner","sections":[{"name":"Today","description":"Tasks for today"}],"properties":[{"name":"Status","type":"status","description":"Task status"}]}`,
	}
	router := newTestRouter(t, completer)

	rec := doJSON(router, http.MethodPost, "/api/generate", gin.H{"prompt": "daily planning board"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK       bool `json:"ok"`
		Template struct {
			Title string `json:"title"`
		} `json:"template"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "Daily Planner", resp.Template.Title)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGenerateEndpoint_ValidationFailure(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{})

	rec := doJSON(router, http.MethodPost, "/api/generate", gin.H{"prompt": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
}

func TestGenerateEndpoint_InvalidTemplateIs500(t *testing.T) {
	completer := &stubCompleter{
		reply: `{"title":"T","sections":[],"properties":[{"name":"K","type":"invalid-kind","description":"d"}]}`,
	}
	router := newTestRouter(t, completer)

	rec := doJSON(router, http.MethodPost, "/api/generate", gin.H{"prompt": "daily planning board"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "Invalid template generated. Please try again.", resp.Error)
}

func TestGenerateEndpoint_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoOpLogger()
	limiter := ratelimit.NewMemory(ratelimit.Config{Window: time.Minute, MaxRequests: 1})
	generator := generate.NewService(limiter, &stubCompleter{reply: "{}"}, log)
	publisher := publish.NewService(config.GistConfig{Token: "t", APIURL: "http://localhost:1", Timeout: 1000},
		httpclient.NewClient(time.Second),
		ratelimit.NewMemory(ratelimit.Config{Window: time.Minute, MaxRequests: 1}), log)
	router := NewRouter(NewHandler(generator, publisher, nil, log), log)

	doJSON(router, http.MethodPost, "/api/generate", gin.H{"prompt": "daily planning board"})
	rec := doJSON(router, http.MethodPost, "/api/generate", gin.H{"prompt": "daily planning board"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestPreviewEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{})

	body := gin.H{
		"title": "Daily Planner",
		"sections": []gin.H{
			{"name": "Today", "description": "Tasks for today"},
		},
		"properties": []gin.H{
			{"name": "Status", "type": "status", "description": "Task status"},
		},
	}
	rec := doJSON(router, http.MethodPost, "/api/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK       bool   `json:"ok"`
		Markdown string `json:"markdown"`
		HTML     string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Contains(t, resp.Markdown, "# Daily Planner")
	assert.Contains(t, resp.Markdown, "## Today")
	assert.Contains(t, resp.HTML, "<h1")
}

func TestPreviewEndpoint_InvalidTemplate(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{})

	rec := doJSON(router, http.MethodPost, "/api/preview", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		OK     bool     `json:"ok"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Errors)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
