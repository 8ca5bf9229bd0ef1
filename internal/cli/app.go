package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"gitamind/config"
	"gitamind/internal/adapter/analyzer"
	"gitamind/internal/adapter/cache"
	"gitamind/internal/adapter/chunker"
	"gitamind/internal/adapter/embedding"
	"gitamind/internal/adapter/extractor"
	"gitamind/internal/adapter/llm"
	"gitamind/internal/adapter/retriever"
	"gitamind/internal/domain"
	"gitamind/internal/port"
	"gitamind/internal/usecase"
)

// app holds the wired use cases shared by the commands.
type app struct {
	loader   *usecase.PassageLoader
	retrieve *usecase.RetrieveUseCase
	guide    *usecase.GuideUseCase
	reranked bool
}

func buildLoader(cfg *config.Config, dir string, opts ...extractor.Option) *usecase.PassageLoader {
	return usecase.NewPassageLoader(
		cfg.SourcePath(dir),
		chunker.NewPassageChunker(cfg.Retrieve.PassageChars),
		cache.NewCorpusCache(),
		usecase.WithExtractorOptions(opts...),
	)
}

// buildRetriever wires lexical ranking and, when the embedding provider has
// a credential, the embedding reranker.
func buildRetriever(cfg *config.Config, loader port.CorpusLoader, lexicalOnly bool) (*usecase.RetrieveUseCase, bool, error) {
	lexical := retriever.NewLexicalRetriever(analyzer.NewTokenizer())

	if lexicalOnly {
		return usecase.NewRetrieveUseCase(loader, lexical, nil, cfg.Retrieve.TopK, cfg.Retrieve.Shortlist), false, nil
	}

	var reranker port.Reranker
	emb, err := embedding.New(cfg.Embedding)
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		slog.Debug("embedding reranker disabled", "provider", cfg.Embedding.Provider)
	case err != nil:
		return nil, false, fmt.Errorf("embedding provider: %w", err)
	default:
		reranker = retriever.NewEmbeddingReranker(emb)
	}

	uc := usecase.NewRetrieveUseCase(loader, lexical, reranker, cfg.Retrieve.TopK, cfg.Retrieve.Shortlist)
	return uc, reranker != nil, nil
}

func buildApp(cfg *config.Config, dir string, lexicalOnly bool, opts ...extractor.Option) (*app, error) {
	loader := buildLoader(cfg, dir, opts...)

	retrieve, reranked, err := buildRetriever(cfg, loader, lexicalOnly)
	if err != nil {
		return nil, err
	}

	providers, err := llm.NewProviders(cfg.LLM)
	if err != nil {
		return nil, err
	}
	prompts, err := llm.NewPromptBuilder(cfg.LLM.Language)
	if err != nil {
		return nil, err
	}

	return &app{
		loader:   loader,
		retrieve: retrieve,
		guide:    usecase.NewGuideUseCase(retrieve, providers, prompts, cfg.Retrieve.TopK),
		reranked: reranked,
	}, nil
}
