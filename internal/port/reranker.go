package port

import (
	"context"

	"gitamind/internal/domain"
)

// Reranker reorders a lexical shortlist by semantic relevance.
// Implementations never fail: on any problem they keep the incoming order.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []domain.Passage, limit int) []domain.Passage
}
