package cache

import (
	"sync/atomic"

	"gitamind/internal/domain"
)

// CorpusCache holds the process-wide parsed corpus. It starts empty, is
// published at most once, and is read-only afterwards. Concurrent first
// loads may each parse; Publish keeps whichever corpus arrives first.
type CorpusCache struct {
	corpus    atomic.Pointer[domain.Corpus]
	published atomic.Int64
	attempts  atomic.Int64
}

func NewCorpusCache() *CorpusCache {
	return &CorpusCache{}
}

// Get returns the cached corpus, if any.
func (c *CorpusCache) Get() (domain.Corpus, bool) {
	p := c.corpus.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Publish stores corpus unless another caller already did, and returns the
// corpus that is now cached.
func (c *CorpusCache) Publish(corpus domain.Corpus) domain.Corpus {
	c.attempts.Add(1)
	if c.corpus.CompareAndSwap(nil, &corpus) {
		c.published.Add(1)
		return corpus
	}
	return *c.corpus.Load()
}

type Stats struct {
	Cached    bool
	Attempts  int64 // corpora handed to Publish
	Published int64 // corpora actually stored
}

func (c *CorpusCache) Stats() Stats {
	return Stats{
		Cached:    c.corpus.Load() != nil,
		Attempts:  c.attempts.Load(),
		Published: c.published.Load(),
	}
}
