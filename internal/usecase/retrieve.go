package usecase

import (
	"context"
	"log/slog"

	"gitamind/internal/adapter/retriever"
	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// RetrieveUseCase composes lexical ranking with optional embedding reranking.
type RetrieveUseCase struct {
	loader    port.CorpusLoader
	lexical   *retriever.LexicalRetriever
	reranker  port.Reranker
	topK      int
	shortlist int
	logger    *slog.Logger
}

// NewRetrieveUseCase creates a retrieve use case. A nil reranker means
// results are ranked lexically only.
func NewRetrieveUseCase(
	loader port.CorpusLoader,
	lexical *retriever.LexicalRetriever,
	reranker port.Reranker,
	topK, shortlist int,
) *RetrieveUseCase {
	if topK <= 0 {
		topK = retriever.DefaultTopK
	}
	if shortlist <= 0 {
		shortlist = retriever.DefaultShortlist
	}
	return &RetrieveUseCase{
		loader:    loader,
		lexical:   lexical,
		reranker:  reranker,
		topK:      topK,
		shortlist: shortlist,
		logger:    slog.Default().With("component", "retrieve"),
	}
}

// RetrieveTopPassages returns up to limit passages for query. The only error
// it returns is domain.ErrDocumentUnavailable from loading the corpus.
func (u *RetrieveUseCase) RetrieveTopPassages(ctx context.Context, query string, limit int) ([]domain.Passage, error) {
	if limit <= 0 {
		limit = u.topK
	}

	corpus, err := u.loader.LoadPassages(ctx)
	if err != nil {
		return nil, err
	}

	if u.reranker == nil {
		return u.lexical.RankLexically(corpus, query, limit), nil
	}

	candidates := u.lexical.RankLexically(corpus, query, max(u.shortlist, limit))
	u.logger.Debug("lexical shortlist", "query_len", len(query), "candidates", len(candidates))

	return u.reranker.Rerank(ctx, query, candidates, limit), nil
}

// RetrieveLexical ranks without reranking and keeps scores, for inspection.
func (u *RetrieveUseCase) RetrieveLexical(ctx context.Context, query string, limit int) ([]domain.ScoredPassage, error) {
	if limit <= 0 {
		limit = u.topK
	}

	corpus, err := u.loader.LoadPassages(ctx)
	if err != nil {
		return nil, err
	}
	return u.lexical.Rank(corpus, query, limit), nil
}

// PassageResult is a simplified result for CLI and HTTP output.
type PassageResult struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score,omitempty"`
	Text  string  `json:"text"`
}
