package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed sends every text in one batch and returns one vector per input,
	// in input order. A slot may be empty if the service omitted it.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}
