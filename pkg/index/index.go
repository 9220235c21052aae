// Package index holds the in-memory embedding index over the product
// documentation chunks. It owns storage and ranking only; the encoder
// is an injected service.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/internal/types"
)

// epsilon guards the division for a degenerate all-zero vector.
const epsilon = 1e-8

// Index is immutable after Build and safe for concurrent queries.
type Index struct {
	embedder types.EmbeddingService
	chunks   []models.DocumentChunk
	vectors  [][]float32
}

// Build encodes every chunk once. onProgress, when non-nil, is called
// after each chunk is encoded.
func Build(ctx context.Context, embedder types.EmbeddingService, chunks []models.DocumentChunk, onProgress func(done, total int)) (*Index, error) {
	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vecs, err := embedder.Embed(ctx, []string{chunk.Text})
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", chunk.ID, err)
		}
		vectors = append(vectors, vecs[0])
		if onProgress != nil {
			onProgress(i+1, len(chunks))
		}
	}

	return &Index{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
	}, nil
}

// Query encodes the text with the same encoder and returns the k chunks
// of highest cosine similarity, ties broken by original chunk order.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]models.ScoredChunk, error) {
	if k <= 0 || len(ix.chunks) == 0 {
		return []models.ScoredChunk{}, nil
	}

	vecs, err := ix.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	query := vecs[0]

	scores := make([]float64, len(ix.vectors))
	order := make([]int, len(ix.vectors))
	for i := range ix.vectors {
		scores[i] = Cosine(query, ix.vectors[i])
		order[i] = i
	}

	// Stable sort keeps document order for equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]models.ScoredChunk, 0, k)
	for _, i := range order[:k] {
		results = append(results, models.ScoredChunk{Chunk: ix.chunks[i], Score: scores[i]})
	}
	return results, nil
}

// ChunkCount returns the number of indexed chunks.
func (ix *Index) ChunkCount() int { return len(ix.chunks) }

// VectorCount returns the number of stored vectors.
func (ix *Index) VectorCount() int { return len(ix.vectors) }

// Cosine returns dot(a,b) / (|a|*|b| + eps).
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + epsilon)
}
