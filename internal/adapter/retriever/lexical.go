package retriever

import (
	"sort"
	"strings"

	"gitamind/internal/adapter/analyzer"
	"gitamind/internal/domain"
)

const (
	// DefaultTopK is the number of passages returned as the final answer.
	DefaultTopK = 3
	// DefaultShortlist is the number of lexical candidates handed to the reranker.
	DefaultShortlist = 30
)

// LexicalRetriever ranks passages by how many query tokens they contain.
type LexicalRetriever struct {
	tokenizer *analyzer.Tokenizer
}

func NewLexicalRetriever(tokenizer *analyzer.Tokenizer) *LexicalRetriever {
	if tokenizer == nil {
		tokenizer = analyzer.NewTokenizer()
	}
	return &LexicalRetriever{tokenizer: tokenizer}
}

// Score counts the query tokens, repeats included, that occur as substrings
// of the lowercased passage.
func (r *LexicalRetriever) Score(passage domain.Passage, query string) int {
	return scoreTokens(r.tokenizer.Normalize(passage.Text), r.tokenizer.Tokenize(query))
}

func scoreTokens(text string, tokens []string) int {
	score := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			score++
		}
	}
	return score
}

// Rank returns up to limit passages with a positive score, highest first,
// ties kept in corpus order. When nothing matches it returns the first
// limit passages of the corpus so callers always get something to show.
func (r *LexicalRetriever) Rank(corpus domain.Corpus, query string, limit int) []domain.ScoredPassage {
	if limit <= 0 {
		limit = DefaultTopK
	}

	tokens := r.tokenizer.Tokenize(query)

	var matched []domain.ScoredPassage
	for i, p := range corpus {
		score := scoreTokens(r.tokenizer.Normalize(p.Text), tokens)
		if score > 0 {
			matched = append(matched, domain.ScoredPassage{Passage: p, Index: i, Score: float64(score)})
		}
	}

	if len(matched) == 0 {
		n := min(limit, len(corpus))
		fallback := make([]domain.ScoredPassage, n)
		for i := 0; i < n; i++ {
			fallback[i] = domain.ScoredPassage{Passage: corpus[i], Index: i}
		}
		return fallback
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// RankLexically is Rank reduced to the passages themselves.
func (r *LexicalRetriever) RankLexically(corpus domain.Corpus, query string, limit int) []domain.Passage {
	return passagesOf(r.Rank(corpus, query, limit))
}

func passagesOf(scored []domain.ScoredPassage) []domain.Passage {
	out := make([]domain.Passage, len(scored))
	for i, sp := range scored {
		out[i] = sp.Passage
	}
	return out
}
