// Package chunker splits raw product documentation into retrievable
// chunks. Splitting happens at section headers first, then at numbered
// sub-items when a section is oversized.
package chunker

import (
	"regexp"
	"strings"

	"github.com/oakhigbe/globuschat/internal/models"
)

type ChunkerConfig struct {
	MaxChunkSize     int // target upper bound in characters
	MinSectionLength int // sections shorter than this are noise
	MinChunkLength   int // chunks at or below this are discarded
}

type Chunker struct {
	config ChunkerConfig
}

var numberedItem = regexp.MustCompile(`^\d+\. `)

func NewWithConfig(config ChunkerConfig) Chunker {
	if config.MaxChunkSize == 0 {
		config.MaxChunkSize = 400
	}
	if config.MinSectionLength == 0 {
		config.MinSectionLength = 30
	}
	if config.MinChunkLength == 0 {
		config.MinChunkLength = 20
	}

	return Chunker{
		config: config,
	}
}

// Chunk splits the document into non-empty chunks in document order.
// Degenerate input yields an empty result, never an error.
func (c *Chunker) Chunk(text string) []models.DocumentChunk {
	var parts []string

	for _, section := range c.splitSections(text) {
		section = strings.TrimSpace(section)
		if section == "" || len(section) < c.config.MinSectionLength {
			continue
		}

		if len(section) <= c.config.MaxChunkSize {
			parts = append(parts, section)
			continue
		}

		// Oversized section: split at numbered items like "1. Salary Advance Loan"
		for _, sub := range splitAtNumberedItems(section) {
			if sub = strings.TrimSpace(sub); sub != "" {
				parts = append(parts, sub)
			}
		}
	}

	chunks := make([]models.DocumentChunk, 0, len(parts))
	for _, part := range parts {
		if len(part) > c.config.MinChunkLength {
			chunks = append(chunks, models.DocumentChunk{ID: len(chunks), Text: part})
		}
	}
	return chunks
}

// splitSections breaks the text before every line that looks like a
// section header: a line of 3 to 51 characters starting with an
// uppercase letter and followed by another line.
func (c *Chunker) splitSections(text string) []string {
	lines := strings.Split(text, "\n")

	var sections []string
	var current []string
	for i, line := range lines {
		if i > 0 && i < len(lines)-1 && looksLikeHeader(line) && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}

func looksLikeHeader(line string) bool {
	if len(line) < 3 || len(line) > 51 {
		return false
	}
	return line[0] >= 'A' && line[0] <= 'Z'
}

func splitAtNumberedItems(section string) []string {
	lines := strings.Split(section, "\n")

	var subs []string
	var current []string
	for i, line := range lines {
		if i > 0 && numberedItem.MatchString(line) && len(current) > 0 {
			subs = append(subs, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		subs = append(subs, strings.Join(current, "\n"))
	}
	return subs
}
