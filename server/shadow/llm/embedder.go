package llm

import "context"

// Embedder converts free text into a fixed-length vector for similarity
// comparison. One outbound call, no local retry; the caller decides whether
// to abort or degrade.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
