package retriever

import (
	"context"
	"log/slog"
	"sort"

	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// EmbeddingReranker reorders a lexical shortlist by cosine similarity between
// the query embedding and each candidate embedding. Any embedding failure
// leaves the lexical order in place.
type EmbeddingReranker struct {
	embedder port.Embedder
	logger   *slog.Logger
}

// NewEmbeddingReranker creates a reranker. A nil embedder means no credential
// is configured, and every call truncates the incoming order.
func NewEmbeddingReranker(embedder port.Embedder) *EmbeddingReranker {
	return &EmbeddingReranker{
		embedder: embedder,
		logger:   slog.Default().With("component", "embedding-reranker"),
	}
}

func (r *EmbeddingReranker) Rerank(ctx context.Context, query string, candidates []domain.Passage, limit int) []domain.Passage {
	if limit <= 0 {
		limit = DefaultTopK
	}
	if r.embedder == nil || len(candidates) == 0 {
		return truncate(candidates, limit)
	}

	inputs := make([]string, 0, len(candidates)+1)
	inputs = append(inputs, query)
	for _, c := range candidates {
		inputs = append(inputs, c.Text)
	}

	vectors, err := r.embedder.Embed(ctx, inputs)
	if err != nil {
		r.logger.Warn("embedding request failed, keeping lexical order", "err", err)
		return truncate(candidates, limit)
	}
	if nonEmpty(vectors) < 2 || len(vectors[0]) == 0 {
		r.logger.Warn("embedding response too short, keeping lexical order", "vectors", nonEmpty(vectors))
		return truncate(candidates, limit)
	}

	queryVec := vectors[0]
	scored := make([]domain.ScoredPassage, len(candidates))
	for i, c := range candidates {
		var vec []float32
		if i+1 < len(vectors) {
			vec = vectors[i+1]
		}
		scored[i] = domain.ScoredPassage{
			Passage: c,
			Index:   i,
			Score:   cosineSimilarity(queryVec, vec),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	r.logger.Debug("reranked shortlist", "candidates", len(candidates), "model", r.embedder.ModelName())

	return truncate(passagesOf(scored), limit)
}

func truncate(passages []domain.Passage, limit int) []domain.Passage {
	if len(passages) > limit {
		passages = passages[:limit]
	}
	return passages
}

func nonEmpty(vectors [][]float32) int {
	n := 0
	for _, v := range vectors {
		if len(v) > 0 {
			n++
		}
	}
	return n
}
