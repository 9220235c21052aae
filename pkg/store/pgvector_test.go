package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/pkg/store"
)

// stubEmbedder returns fixed vectors keyed by input text, padded to the
// table's vector dimension.
type stubEmbedder struct {
	dim     int
	vectors map[string][]float32
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", text)
		}
		padded := make([]float32, s.dim)
		copy(padded, v)
		out[i] = padded
	}
	return out, nil
}

// Requires a running Postgres with the pgvector extension; set
// DATABASE_URL to run.
func TestVectorStore(t *testing.T) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set, skipping pgvector integration test")
	}

	ctx := context.Background()
	embedder := &stubEmbedder{dim: 3, vectors: map[string][]float32{
		"savings account rates":   {1, 0, 0},
		"card blocking procedure": {0, 1, 0},
	}}

	vs, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: connString,
		TableName:  "product_chunks_test",
		VectorDim:  3,
	}, embedder)
	require.NoError(t, err)
	defer vs.Close()

	err = vs.Store(ctx, []models.DocumentChunk{
		{ID: 0, Text: "savings account rates"},
		{ID: 1, Text: "card blocking procedure"},
	})
	require.NoError(t, err)

	results, err := vs.Query(ctx, "savings account rates", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)

	// Upsert replaces rather than duplicates.
	err = vs.Store(ctx, []models.DocumentChunk{{ID: 0, Text: "savings account rates"}})
	require.NoError(t, err)

	results, err = vs.Query(ctx, "savings account rates", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
