package chunker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhigbe/globuschat/pkg/chunker"
)

const sampleDoc = "Debit Cards\n" +
	"Our debit cards work on all ATMs nationwide and support contactless payments for daily purchases.\n" +
	"\n" +
	"Loan Products\n" +
	"1. Salary Advance Loan gives salaried customers quick access to half of their monthly net pay.\n" +
	"2. Personal Loan offers flexible repayment over twelve months for verified account holders.\n"

func TestChunker_SplitsAtSectionHeaders(t *testing.T) {
	c := chunker.NewWithConfig(chunker.ChunkerConfig{
		MaxChunkSize:     120,
		MinSectionLength: 30,
		MinChunkLength:   20,
	})

	chunks := c.Chunk(sampleDoc)

	assert.Len(t, chunks, 3)
	assert.Contains(t, chunks[0].Text, "Debit Cards")
	assert.Contains(t, chunks[0].Text, "contactless payments")
	assert.Contains(t, chunks[1].Text, "1. Salary Advance Loan")
	assert.Contains(t, chunks[2].Text, "2. Personal Loan")
}

func TestChunker_OversizedSectionSplitsAtNumberedItems(t *testing.T) {
	c := chunker.NewWithConfig(chunker.ChunkerConfig{
		MaxChunkSize:     120,
		MinSectionLength: 30,
		MinChunkLength:   20,
	})

	chunks := c.Chunk(sampleDoc)

	// The Loan Products section exceeds the chunk size and is split at
	// its numbered items; no resulting chunk mixes two loans.
	for _, chunk := range chunks {
		if assert.NotEmpty(t, chunk.Text) {
			assert.False(t,
				strings.Contains(chunk.Text, "Salary Advance") && strings.Contains(chunk.Text, "Personal Loan"),
				"chunk should not span two numbered items: %q", chunk.Text)
		}
	}
}

func TestChunker_IDsFollowDocumentOrder(t *testing.T) {
	c := chunker.NewWithConfig(chunker.ChunkerConfig{
		MaxChunkSize:     120,
		MinSectionLength: 30,
		MinChunkLength:   20,
	})

	chunks := c.Chunk(sampleDoc)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ID)
	}
}

func TestChunker_DegenerateInput(t *testing.T) {
	c := chunker.NewWithConfig(chunker.ChunkerConfig{})

	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   \n\n  \n"))
	assert.Empty(t, c.Chunk("too short"))
}

func TestChunker_DropsNoiseChunks(t *testing.T) {
	c := chunker.NewWithConfig(chunker.ChunkerConfig{
		MaxChunkSize:     120,
		MinSectionLength: 30,
		MinChunkLength:   20,
	})

	// Each section is below the minimum section length.
	chunks := c.Chunk("Savings\nrates\n\nLoans\nterms\n")
	assert.Empty(t, chunks)
}
