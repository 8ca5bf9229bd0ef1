package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitamind/internal/domain"
)

func TestCorpusCache_EmptyUntilPublished(t *testing.T) {
	c := NewCorpusCache()

	_, ok := c.Get()
	assert.False(t, ok)

	corpus := domain.Corpus{{Text: "a"}}
	assert.Equal(t, corpus, c.Publish(corpus))

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, corpus, got)
}

func TestCorpusCache_FirstPublishWins(t *testing.T) {
	c := NewCorpusCache()

	first := domain.Corpus{{Text: "first"}}
	second := domain.Corpus{{Text: "second"}}

	c.Publish(first)
	assert.Equal(t, first, c.Publish(second))

	stats := c.Stats()
	assert.True(t, stats.Cached)
	assert.EqualValues(t, 2, stats.Attempts)
	assert.EqualValues(t, 1, stats.Published)
}

func TestCorpusCache_EmptyCorpusIsCached(t *testing.T) {
	c := NewCorpusCache()
	c.Publish(domain.Corpus{})

	got, ok := c.Get()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCorpusCache_ConcurrentPublish(t *testing.T) {
	c := NewCorpusCache()

	var wg sync.WaitGroup
	results := make([]domain.Corpus, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Publish(domain.Corpus{{Text: fmt.Sprintf("parse %d", i)}})
		}(i)
	}
	wg.Wait()

	winner, ok := c.Get()
	require.True(t, ok)
	for _, r := range results {
		assert.Equal(t, winner, r)
	}
	assert.EqualValues(t, 1, c.Stats().Published)
}
