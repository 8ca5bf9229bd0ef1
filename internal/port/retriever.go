package port

import (
	"context"

	"gitamind/internal/domain"
)

// PassageRetriever returns the passages most relevant to a query.
type PassageRetriever interface {
	RetrieveTopPassages(ctx context.Context, query string, limit int) ([]domain.Passage, error)
}

// CorpusLoader returns the process-wide corpus, parsing the source on first use.
type CorpusLoader interface {
	LoadPassages(ctx context.Context) (domain.Corpus, error)
}
