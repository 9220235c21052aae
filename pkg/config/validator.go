package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate LLM config
	if c.LLM.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "Ollama base URL is required",
		})
	} else if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid Ollama base URL",
		})
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.IntentMaxTokens < 1 {
		errors = append(errors, ValidationError{
			Field:   "llm.intent_max_tokens",
			Message: "intent_max_tokens must be positive",
		})
	}

	if c.LLM.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate retrieval config
	if c.Retrieval.Backend != "memory" && c.Retrieval.Backend != "pgvector" {
		errors = append(errors, ValidationError{
			Field:   "retrieval.backend",
			Message: fmt.Sprintf("unknown backend %q, want \"memory\" or \"pgvector\"", c.Retrieval.Backend),
		})
	}

	if c.Retrieval.TopK < 0 {
		errors = append(errors, ValidationError{
			Field:   "retrieval.top_k",
			Message: "top_k must be non-negative",
		})
	}

	if c.Retrieval.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "retrieval.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Retrieval.MinChunkLength < 0 || c.Retrieval.MinChunkLength >= c.Retrieval.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "retrieval.min_chunk_length",
			Message: "min_chunk_length must be non-negative and less than chunk_size",
		})
	}

	// Validate database config (only required for the pgvector backend)
	if c.Retrieval.Backend == "pgvector" && c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "database URL is required for the pgvector backend",
		})
	}

	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	// Validate server config
	if c.Server.MaxHistoryTurns < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_history_turns",
			Message: "max_history_turns must be positive",
		})
	}

	return errors
}
