// Package errors provides the standardized error taxonomy for the service.
// Every failure that can reach a client is classified here; the Message field
// is the only text ever surfaced, raw upstream detail stays in server logs.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"
	ErrCodeUpstreamRateLimited  ErrorCode = "UPSTREAM_RATE_LIMITED"
	ErrCodeUpstreamUnavailable  ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout      ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeUpstreamAuthFailed   ErrorCode = "UPSTREAM_AUTH_FAILED"
	ErrCodeUpstreamQuota        ErrorCode = "UPSTREAM_QUOTA_EXCEEDED"
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeInvalidTemplate      ErrorCode = "INVALID_TEMPLATE"
	ErrCodeContentTooLarge      ErrorCode = "CONTENT_TOO_LARGE"
	ErrCodeInternal             ErrorCode = "INTERNAL"
)

// ServiceError is a classified application error. Message is safe for
// clients; Cause is for server-side logging only.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Status  int
	Cause   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError[%s]: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// AsServiceError extracts a *ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// NewInvalidInputError carries validator messages verbatim; they are
// user-actionable and safe to surface.
func NewInvalidInputError(message string) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func NewRateLimitedError() *ServiceError {
	return &ServiceError{
		Code:    ErrCodeRateLimited,
		Message: "Too many requests. Please wait a moment and try again.",
		Status:  http.StatusTooManyRequests,
	}
}

func NewUpstreamRateLimitedError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUpstreamRateLimited,
		Message: "The generation service is busy. Please try again later.",
		Status:  http.StatusServiceUnavailable,
		Cause:   cause,
	}
}

func NewUpstreamUnavailableError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: "The generation service is currently unavailable.",
		Status:  http.StatusServiceUnavailable,
		Cause:   cause,
	}
}

func NewUpstreamTimeoutError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUpstreamTimeout,
		Message: "The request timed out. Please try again.",
		Status:  http.StatusRequestTimeout,
		Cause:   cause,
	}
}

func NewUpstreamAuthFailedError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUpstreamAuthFailed,
		Message: "Publishing failed: the hosting service rejected our credentials.",
		Status:  http.StatusUnauthorized,
		Cause:   cause,
	}
}

func NewUpstreamQuotaError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUpstreamQuota,
		Message: "Publishing quota exceeded. Please try again later.",
		Status:  http.StatusTooManyRequests,
		Cause:   cause,
	}
}

// NewConfigurationMissingError never reveals which secret is absent.
func NewConfigurationMissingError(status int, cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeConfigurationMissing,
		Message: "Service is not available right now.",
		Status:  status,
		Cause:   cause,
	}
}

func NewInvalidTemplateError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInvalidTemplate,
		Message: "Invalid template generated. Please try again.",
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}

func NewContentTooLargeError() *ServiceError {
	return &ServiceError{
		Code:    ErrCodeContentTooLarge,
		Message: "Content exceeds the 1 MiB publish limit.",
		Status:  http.StatusRequestEntityTooLarge,
	}
}

func NewInternalError(cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternal,
		Message: "An unexpected error occurred.",
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}
