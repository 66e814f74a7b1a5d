// internal/inference/hosted_test.go
package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"template-forge/internal/common/config"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
)

func newHostedClient(t *testing.T, url string, timeoutMs int) *Hosted {
	t.Helper()
	cfg := config.LLMConfig{
		Provider: "hosted",
		BaseURL:  url,
		APIKey:   "test-key",
		Timeout:  timeoutMs,
	}
	return NewHosted(cfg, httpclient.NewClient(time.Duration(timeoutMs)*time.Millisecond), logger.NewTestLogger(t))
}

func TestHosted_NormalizesResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			"array of one object with generated_text",
			`[{"generated_text":"{\"title\":\"T\"}"}]`,
			`{"title":"T"}`,
		},
		{
			"bare string",
			`"plain completion text"`,
			"plain completion text",
		},
		{
			"object passed through as encoded form",
			`{"title":"T","sections":[]}`,
			`{"sections":[],"title":"T"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			client := newHostedClient(t, upstream.URL, 5000)
			got, err := client.Complete(context.Background(), "prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHosted_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"provider rate limit", http.StatusTooManyRequests, `{"error":"rate limited"}`, ErrUpstreamRateLimited},
		{"server error", http.StatusInternalServerError, "boom", ErrUpstreamUnavailable},
		{"bad gateway", http.StatusBadGateway, "", ErrUpstreamUnavailable},
		{"error payload with 200", http.StatusOK, `{"error":"model overloaded"}`, ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			client := newHostedClient(t, upstream.URL, 5000)
			_, err := client.Complete(context.Background(), "prompt")
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestHosted_Timeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer upstream.Close()

	client := newHostedClient(t, upstream.URL, 50)
	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHosted_MissingKey(t *testing.T) {
	client := NewHosted(config.LLMConfig{Provider: "hosted", BaseURL: "http://localhost:1", Timeout: 1000},
		httpclient.NewClient(time.Second), logger.NewNoOpLogger())

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
