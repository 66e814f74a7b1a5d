// internal/publish/service.go
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"template-forge/internal/common/config"
	apperrors "template-forge/internal/common/errors"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
	"template-forge/internal/common/metrics"
	"template-forge/internal/ratelimit"
	"template-forge/internal/validation"
)

// MaxContentBytes caps what the publish path accepts before any network call.
const MaxContentBytes = 1 << 20

// Service forwards generated content as a single file to the gist-hosting
// upstream. Pass-through only: no persistence, no retries.
type Service struct {
	cfg     config.GistConfig
	client  *httpclient.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
}

func NewService(cfg config.GistConfig, client *httpclient.Client, limiter ratelimit.Limiter, log logger.Logger) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		logger:  log.WithFields(map[string]interface{}{"component": "publish"}),
	}
}

type gistRequest struct {
	Description string              `json:"description,omitempty"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

// Publish validates and forwards content, returning the public URL. Errors
// are always *apperrors.ServiceError with the upstream mapping: 401 stays
// 401, 403 surfaces as 429, anything else non-success as 503, a local
// timeout as 408.
func (s *Service) Publish(ctx context.Context, clientID, content, filename, description string) (string, error) {
	allowed, err := s.limiter.Allow(ctx, clientID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !allowed {
		metrics.RateLimitDenied.WithLabelValues("publish").Inc()
		return "", apperrors.NewRateLimitedError()
	}

	if len(content) > MaxContentBytes {
		return "", apperrors.NewContentTooLargeError()
	}

	contentResult := validation.CheckContent(content)
	if !contentResult.Valid {
		return "", apperrors.NewInvalidInputError(strings.Join(contentResult.Errors, "; "))
	}

	if s.cfg.Token == "" {
		return "", apperrors.NewConfigurationMissingError(http.StatusServiceUnavailable, errors.New("publish token not configured"))
	}

	if filename == "" {
		filename = "template.md"
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TimeoutDuration())
	defer cancel()

	body, err := json.Marshal(gistRequest{
		Description: description,
		Public:      true,
		Files:       map[string]gistFile{filename: {Content: content}},
	})
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "token "+s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewUpstreamTimeoutError(err)
		}
		return "", apperrors.NewUpstreamUnavailableError(err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", apperrors.NewUpstreamAuthFailedError(fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusForbidden:
		return "", apperrors.NewUpstreamQuotaError(fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		s.logger.Error("gist upstream returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return "", apperrors.NewUpstreamUnavailableError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var created struct {
		HTMLURL string `json:"html_url"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || created.HTMLURL == "" {
		return "", apperrors.NewUpstreamUnavailableError(errors.New("malformed gist response"))
	}

	return created.HTMLURL, nil
}
