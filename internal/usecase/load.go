package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"gitamind/internal/adapter/cache"
	"gitamind/internal/adapter/extractor"
	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// PassageLoader parses the source document into a corpus once per process.
type PassageLoader struct {
	source    string
	segmenter port.Segmenter
	cache     *cache.CorpusCache
	extractor port.TextExtractor
	extOpts   []extractor.Option
	logger    *slog.Logger
}

type LoaderOption func(*PassageLoader)

// WithExtractor replaces the extension-based extractor choice.
func WithExtractor(e port.TextExtractor) LoaderOption {
	return func(l *PassageLoader) {
		l.extractor = e
	}
}

// WithExtractorOptions forwards options (progress reporting) to the extractor.
func WithExtractorOptions(opts ...extractor.Option) LoaderOption {
	return func(l *PassageLoader) {
		l.extOpts = append(l.extOpts, opts...)
	}
}

// NewPassageLoader creates a loader for source, which may be a glob pattern.
func NewPassageLoader(source string, segmenter port.Segmenter, corpusCache *cache.CorpusCache, opts ...LoaderOption) *PassageLoader {
	if corpusCache == nil {
		corpusCache = cache.NewCorpusCache()
	}
	l := &PassageLoader{
		source:    source,
		segmenter: segmenter,
		cache:     corpusCache,
		logger:    slog.Default().With("component", "passage-loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadResult describes one LoadPassages call.
type LoadResult struct {
	Source   string
	Corpus   domain.Corpus
	Stats    domain.CorpusStats
	Cached   bool
	Duration time.Duration
}

// LoadPassages returns the cached corpus, parsing the source on first use.
// Each call gets its own copy, so callers cannot change the shared corpus.
// Failures wrap domain.ErrDocumentUnavailable and leave the cache empty.
func (l *PassageLoader) LoadPassages(ctx context.Context) (domain.Corpus, error) {
	res, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return res.Corpus, nil
}

// Load is LoadPassages with timing and stats for the CLI.
func (l *PassageLoader) Load(ctx context.Context) (*LoadResult, error) {
	start := time.Now()

	if corpus, ok := l.cache.Get(); ok {
		return &LoadResult{
			Source:   l.source,
			Corpus:   slices.Clone(corpus),
			Stats:    corpus.Stats(),
			Cached:   true,
			Duration: time.Since(start),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := extractor.ResolveSource(l.source)
	if err != nil {
		l.logger.Warn("source document not found", "source", l.source, "err", err)
		return nil, err
	}

	ext := l.extractor
	if ext == nil {
		ext = extractor.ForPath(path, l.extOpts...)
	}

	text, err := ext.Extract(path)
	if err != nil {
		if !errors.Is(err, domain.ErrDocumentUnavailable) {
			err = wrapUnavailable(err)
		}
		l.logger.Warn("source document extraction failed", "path", path, "err", err)
		return nil, err
	}

	corpus := l.cache.Publish(l.segmenter.Segment(text))
	stats := corpus.Stats()

	l.logger.Info("loaded passages", "path", path, "passages", stats.Passages, "duration", time.Since(start))

	return &LoadResult{
		Source:   path,
		Corpus:   slices.Clone(corpus),
		Stats:    stats,
		Duration: time.Since(start),
	}, nil
}

// CacheStats reports the state of the corpus cache.
func (l *PassageLoader) CacheStats() cache.Stats {
	return l.cache.Stats()
}

func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
}
