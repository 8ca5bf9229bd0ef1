package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gitamind/internal/adapter/llm"
	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// GuideUseCase answers a user message with a reflection grounded in
// retrieved passages, trying providers in priority order.
type GuideUseCase struct {
	retriever port.PassageRetriever
	providers []port.Reflector
	prompts   *llm.PromptBuilder
	topK      int
	logger    *slog.Logger
}

func NewGuideUseCase(retriever port.PassageRetriever, providers []port.Reflector, prompts *llm.PromptBuilder, topK int) *GuideUseCase {
	return &GuideUseCase{
		retriever: retriever,
		providers: providers,
		prompts:   prompts,
		topK:      topK,
		logger:    slog.Default().With("component", "guide"),
	}
}

// Providers returns the configured provider names in the order they are tried.
func (u *GuideUseCase) Providers() []string {
	names := make([]string, len(u.providers))
	for i, p := range u.providers {
		names[i] = p.Name()
	}
	return names
}

// Guide returns a reflection for message. An unavailable source document
// only means the prompt carries no passages. When every provider fails the
// error wraps domain.ErrReflectionFailed.
func (u *GuideUseCase) Guide(ctx context.Context, message string) (*domain.Reflection, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	passages, err := u.retriever.RetrieveTopPassages(ctx, message, u.topK)
	if err != nil {
		if !errors.Is(err, domain.ErrDocumentUnavailable) {
			return nil, err
		}
		u.logger.Warn("continuing without passages", "err", err)
		passages = nil
	}

	prompt, err := u.prompts.UserPrompt(message, passages)
	if err != nil {
		return nil, err
	}

	if len(u.providers) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", domain.ErrReflectionFailed)
	}

	var errs []error
	for _, p := range u.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := p.Reflect(ctx, u.prompts.SystemPrompt(), prompt)
		if err != nil {
			u.logger.Warn("provider failed", "provider", p.Name(), "err", err)
			errs = append(errs, err)
			continue
		}

		reflection, err := llm.ParseReflection(raw)
		if err != nil {
			u.logger.Warn("provider returned invalid payload", "provider", p.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		reflection.Provider = p.Name()
		reflection.Passages = passages
		if reflection.Passages == nil {
			reflection.Passages = []domain.Passage{}
		}
		return &reflection, nil
	}

	return nil, fmt.Errorf("%w: %w", domain.ErrReflectionFailed, errors.Join(errs...))
}
