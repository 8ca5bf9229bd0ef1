package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ModelReflector adapts a langchaingo chat model to port.Reflector.
type ModelReflector struct {
	name    string
	model   llms.Model
	options []llms.CallOption
	logger  *slog.Logger
}

func NewModelReflector(name string, model llms.Model, options ...llms.CallOption) *ModelReflector {
	return &ModelReflector{
		name:    name,
		model:   model,
		options: options,
		logger:  slog.Default().With("component", "llm", "provider", name),
	}
}

func (r *ModelReflector) Name() string {
	return r.name
}

func (r *ModelReflector) Reflect(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	r.logger.Debug("generating reflection", "prompt_len", len(userPrompt))

	resp, err := r.model.GenerateContent(ctx, content, r.options...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fmt.Errorf("%s: empty completion", r.name)
	}

	return resp.Choices[0].Content, nil
}
