// Package types defines the interfaces between the chat pipeline and
// its external services. Components depend on these abstractions, not
// on the ollama-backed implementations in pkg/llm.
package types

import (
	"context"

	"github.com/oakhigbe/globuschat/internal/models"
)

// CompletionRequest carries everything a single text completion needs.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	Stop        []string
}

// CompletionService produces a text completion for a prompt. The
// underlying inference engine is shared process-wide and not assumed
// reentrant; callers get a serialized handle.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// EmbeddingService encodes texts into fixed-length vectors.
type EmbeddingService interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever answers nearest-neighbour queries over the product
// documentation chunks. k caps the result count; a k of zero returns an
// empty result.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]models.ScoredChunk, error)
}
