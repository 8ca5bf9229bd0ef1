package embedding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"gitamind/internal/domain"
)

// LocalEmbedder talks to an OpenAI-compatible embedding server on the local
// network (Ollama, llama.cpp, LM Studio) through langchaingo.
type LocalEmbedder struct {
	embedder embeddings.Embedder
	model    string
	logger   *slog.Logger
}

// NewLocalEmbedder creates an embedder for host. The host plays the role of
// the credential: without one the provider is not configured.
func NewLocalEmbedder(host, model string) (*LocalEmbedder, error) {
	if host == "" {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if model == "" {
		model = "nomic-embed-text"
	}

	// Local servers ignore the token but the client requires one.
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create local embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithStripNewLines(true),
		embeddings.WithBatchSize(512),
	)
	if err != nil {
		return nil, fmt.Errorf("create local embedder: %w", err)
	}

	return &LocalEmbedder{
		embedder: embedder,
		model:    model,
		logger:   slog.Default().With("component", "local-embedder"),
	}, nil
}

func (e *LocalEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	e.logger.Debug("generating embeddings", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingService, err)
	}
	return vectors, nil
}

func (e *LocalEmbedder) ModelName() string {
	return e.model
}
