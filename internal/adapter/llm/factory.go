package llm

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"gitamind/config"
	"gitamind/internal/port"
)

// NewProviders builds reflection providers in configured priority order.
// Providers without a credential are skipped; a hosted provider needs its
// API key, Ollama needs a server URL.
func NewProviders(cfg config.LLMConfig) ([]port.Reflector, error) {
	logger := slog.Default().With("component", "llm")
	httpClient := &http.Client{Timeout: cfg.Timeout}

	callOpts := []llms.CallOption{llms.WithTemperature(cfg.Temperature)}
	if cfg.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(cfg.MaxTokens))
	}

	var providers []port.Reflector
	for _, p := range cfg.Providers {
		reflector, err := newProvider(p, httpClient, callOpts)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p.Name, err)
		}
		if reflector == nil {
			logger.Debug("skipping provider without credentials", "provider", p.Name)
			continue
		}
		providers = append(providers, reflector)
	}

	return providers, nil
}

func newProvider(p config.ProviderConfig, httpClient *http.Client, callOpts []llms.CallOption) (port.Reflector, error) {
	switch p.Name {
	case "openai":
		key := p.APIKey()
		if key == "" {
			return nil, nil
		}
		opts := []openai.Option{
			openai.WithToken(key),
			openai.WithModel(p.Model),
			openai.WithHTTPClient(httpClient),
		}
		if p.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(p.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return NewModelReflector(p.Name, model, append(slices.Clone(callOpts), llms.WithJSONMode())...), nil

	case "ollama":
		if p.BaseURL == "" {
			return nil, nil
		}
		model, err := ollama.New(
			ollama.WithServerURL(p.BaseURL),
			ollama.WithModel(p.Model),
			ollama.WithFormat("json"),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, err
		}
		return NewModelReflector(p.Name, model, callOpts...), nil

	case "anthropic":
		key := p.APIKey()
		if key == "" {
			return nil, nil
		}
		opts := []anthropic.Option{
			anthropic.WithToken(key),
			anthropic.WithModel(p.Model),
			anthropic.WithHTTPClient(httpClient),
		}
		if p.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(p.BaseURL))
		}
		model, err := anthropic.New(opts...)
		if err != nil {
			return nil, err
		}
		return NewModelReflector(p.Name, model, callOpts...), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", p.Name)
	}
}
