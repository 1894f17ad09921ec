package domain

import "context"

// EmbeddingResult is a vector plus provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implementations must be safe for concurrent use
// and deterministic for identical input within one provider model version.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// VectorRecord is one entry in a vector index collection. Upserts always
// re-embed and replace the whole record for an identifier.
type VectorRecord struct {
	ID       string
	Vector   []float32
	Content  string
	Metadata map[string]string
}

// VectorMatch is one nearest-neighbor hit, ordered by increasing distance.
// The identifier has already been converted back to the store form.
type VectorMatch struct {
	ID       EntityID
	Content  string
	Metadata map[string]string
	Distance float64
}
