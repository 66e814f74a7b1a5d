// internal/generate/service.go
package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "template-forge/internal/common/errors"
	"template-forge/internal/common/logger"
	"template-forge/internal/common/metrics"
	"template-forge/internal/inference"
	"template-forge/internal/ratelimit"
	"template-forge/internal/template"
	"template-forge/internal/validation"
)

// Service sequences the generation pipeline: rate check, input validation,
// prompt build, inference call, extraction, template validation. The first
// failure short-circuits; nothing is retried and no state outlives the call.
type Service struct {
	limiter   ratelimit.Limiter
	completer inference.Completer
	logger    logger.Logger
}

// Result carries the validated template and the advisory warnings gathered
// along the pipeline.
type Result struct {
	Template *template.Template
	Warnings []string
}

func NewService(limiter ratelimit.Limiter, completer inference.Completer, log logger.Logger) *Service {
	return &Service{
		limiter:   limiter,
		completer: completer,
		logger:    log.WithFields(map[string]interface{}{"component": "generate"}),
	}
}

// Generate runs the pipeline for one request. clientID identifies the caller
// for rate limiting; errors are always *apperrors.ServiceError.
func (s *Service) Generate(ctx context.Context, clientID, prompt, category string) (*Result, error) {
	// Rate check precedes input validation so the validator itself is
	// protected from volume abuse.
	allowed, err := s.limiter.Allow(ctx, clientID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !allowed {
		metrics.RateLimitDenied.WithLabelValues("generation").Inc()
		return nil, apperrors.NewRateLimitedError()
	}

	inputResult := validation.CheckPrompt(prompt)
	if !inputResult.Valid {
		return nil, apperrors.NewInvalidInputError(strings.Join(inputResult.Errors, "; "))
	}

	built := BuildPrompt(strings.TrimSpace(prompt), category)

	raw, err := s.completer.Complete(ctx, built)
	if err != nil {
		return nil, s.classifyUpstream(err)
	}

	obj, parsed := Extract(raw)
	if !parsed {
		s.logger.Warn("model reply could not be parsed, using fallback template", map[string]interface{}{
			"reply_length": len(raw),
		})
	}

	tmpl, templateResult := validation.CheckTemplate(obj)
	if !templateResult.Valid {
		s.logger.Error("generated template failed validation", map[string]interface{}{
			"errors": templateResult.Errors,
		})
		return nil, apperrors.NewInvalidTemplateError(errors.New(strings.Join(templateResult.Errors, "; ")))
	}

	warnings := append([]string{}, inputResult.Warnings...)
	warnings = append(warnings, templateResult.Warnings...)

	return &Result{Template: tmpl, Warnings: warnings}, nil
}

func (s *Service) classifyUpstream(err error) *apperrors.ServiceError {
	switch {
	case errors.Is(err, inference.ErrMissingAPIKey):
		return apperrors.NewConfigurationMissingError(http.StatusInternalServerError, err)
	case errors.Is(err, inference.ErrUpstreamRateLimited):
		return apperrors.NewUpstreamRateLimitedError(err)
	case errors.Is(err, inference.ErrTimeout):
		return apperrors.NewUpstreamTimeoutError(err)
	case errors.Is(err, inference.ErrUpstreamUnavailable):
		return apperrors.NewUpstreamUnavailableError(err)
	default:
		return apperrors.NewInternalError(err)
	}
}
