package retriever

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitamind/internal/domain"
)

func corpusOf(texts ...string) domain.Corpus {
	c := make(domain.Corpus, len(texts))
	for i, t := range texts {
		c[i] = domain.Passage{Text: t}
	}
	return c
}

func TestScore(t *testing.T) {
	r := NewLexicalRetriever(nil)
	p := domain.Passage{Text: "The Category of Peace"}

	tests := []struct {
		query string
		want  int
	}{
		{"peace", 1},
		{"PEACE cat", 2},
		{"peace peace", 2},
		{"war", 0},
		{"", 0},
		{"   \t ", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Score(p, tt.query), "query %q", tt.query)
	}
}

func TestRankLexically_MoreTokensRankFirst(t *testing.T) {
	r := NewLexicalRetriever(nil)
	corpus := corpusOf(
		"Find peace in action.",
		"Peace of mind comes from equanimity.",
	)

	got := r.RankLexically(corpus, "peace mind", 3)
	require.Len(t, got, 2)
	assert.Equal(t, corpus[1], got[0])
	assert.Equal(t, corpus[0], got[1])
}

func TestRankLexically_TiesKeepCorpusOrder(t *testing.T) {
	r := NewLexicalRetriever(nil)
	corpus := corpusOf(
		"nothing here",
		"duty first",
		"duty second",
		"duty and dharma",
		"duty third",
	)

	got := r.Rank(corpus, "duty dharma", 10)
	require.Len(t, got, 4)
	assert.Equal(t, 3, got[0].Index)
	assert.Equal(t, []int{1, 2, 4}, []int{got[1].Index, got[2].Index, got[3].Index})
}

func TestRankLexically_NoMatchFallsBackToCorpusPrefix(t *testing.T) {
	r := NewLexicalRetriever(nil)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("verse %d", i)
	}
	corpus := corpusOf(texts...)

	for _, query := range []string{"xyzzy", "", "   "} {
		got := r.RankLexically(corpus, query, 3)
		assert.Equal(t, []domain.Passage{corpus[0], corpus[1], corpus[2]}, got, "query %q", query)
	}
}

func TestRankLexically_Limit(t *testing.T) {
	r := NewLexicalRetriever(nil)

	texts := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("yoga %d", i)
	}
	corpus := corpusOf(texts...)

	assert.Len(t, r.RankLexically(corpus, "yoga", 30), 30)
	assert.Len(t, r.RankLexically(corpus, "yoga", 0), DefaultTopK)
	assert.Len(t, r.RankLexically(corpus[:2], "nomatch", 30), 2)
}

func TestRankLexically_EmptyCorpus(t *testing.T) {
	r := NewLexicalRetriever(nil)
	assert.Empty(t, r.RankLexically(nil, "peace", 3))
}
