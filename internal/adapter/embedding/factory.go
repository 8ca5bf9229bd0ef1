package embedding

import (
	"fmt"

	"gitamind/config"
	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// DefaultModel is used when no embedding model is configured.
const DefaultModel = "text-embedding-3-small"

// New builds the configured embedding provider. It returns
// domain.ErrEmbeddingUnavailable when the provider has no credential, in which
// case callers rank lexically.
func New(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "openai", "":
		e, err := NewOpenAIEmbedder(cfg.APIKey(), cfg.Model, cfg.BaseURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "local":
		e, err := NewLocalEmbedder(cfg.BaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "mock":
		return NewMockEmbedder(64), nil
	case "none":
		return nil, domain.ErrEmbeddingUnavailable
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
