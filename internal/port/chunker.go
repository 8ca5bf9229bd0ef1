package port

import "gitamind/internal/domain"

// Segmenter turns extracted document text into an ordered corpus.
type Segmenter interface {
	Segment(text string) domain.Corpus
}

// TextExtractor turns a document on disk into plain text.
type TextExtractor interface {
	Extract(path string) (string, error)
}
