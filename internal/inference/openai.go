// internal/inference/openai.go
package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"template-forge/internal/common/config"
	"template-forge/internal/common/logger"
)

// OpenAI implements Completer using the official openai-go SDK (chat
// completions), classified into the same failure kinds as the hosted client.
type OpenAI struct {
	cfg    config.LLMConfig
	logger logger.Logger
}

func NewOpenAI(cfg config.LLMConfig, log logger.Logger) *OpenAI {
	return &OpenAI{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "inference", "provider": "openai"}),
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if o.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.TimeoutDuration())
	defer cancel()

	opts := []option.RequestOption{option.WithAPIKey(o.cfg.APIKey)}
	if o.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := o.cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", o.classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return ErrUpstreamRateLimited
		}
		o.logger.Error("openai call failed", map[string]interface{}{
			"status": apiErr.StatusCode,
		})
		return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, apiErr.StatusCode)
	}

	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
