// internal/inference/hosted.go
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"template-forge/internal/common/config"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
)

// Hosted calls a hosted text-generation endpoint over plain HTTP with a
// bearer secret. One attempt per request; the context deadline cancels the
// in-flight call.
type Hosted struct {
	cfg    config.LLMConfig
	client *httpclient.Client
	logger logger.Logger
}

func NewHosted(cfg config.LLMConfig, client *httpclient.Client, log logger.Logger) *Hosted {
	return &Hosted{
		cfg:    cfg,
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "inference", "provider": "hosted"}),
	}
}

type hostedRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters map[string]any  `json:"parameters,omitempty"`
	Options    map[string]bool `json:"options,omitempty"`
}

func (h *Hosted) Complete(ctx context.Context, prompt string) (string, error) {
	if h.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, h.cfg.TimeoutDuration())
	defer cancel()

	body, err := json.Marshal(hostedRequest{
		Inputs:  prompt,
		Options: map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		h.logger.Warn("upstream rate limited", map[string]interface{}{"status": resp.StatusCode})
		return "", ErrUpstreamRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// The raw body stays in server logs only.
		h.logger.Error("upstream returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	return normalize(raw)
}

// normalize recovers the completion text from the shapes the provider is
// known to return: an array of one object carrying generated_text, a bare
// JSON string, or any other JSON value passed through as its encoded form.
func normalize(raw []byte) (string, error) {
	var arr []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 && arr[0].GeneratedText != "" {
		return arr[0].GeneratedText, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != "" {
		return "", fmt.Errorf("%w: provider error payload", ErrUpstreamUnavailable)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not JSON at all; treat the body as the completion text.
		return string(raw), nil
	}
	enc, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return string(enc), nil
}
