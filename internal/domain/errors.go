package domain

import "errors"

var (
	// ErrDocumentUnavailable is returned when the source document cannot be read or parsed.
	ErrDocumentUnavailable = errors.New("source document unavailable")

	// ErrEmbeddingService covers transport failures, non-2xx statuses and malformed
	// embedding responses.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrEmbeddingUnavailable means no credential is configured for the embedding provider.
	ErrEmbeddingUnavailable = errors.New("embedding provider not configured")

	ErrInvalidPayload   = errors.New("invalid reflection payload")
	ErrReflectionFailed = errors.New("all reflection providers failed")
	ErrEmptyMessage     = errors.New("empty message")
)
