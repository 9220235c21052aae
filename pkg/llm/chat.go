package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/oakhigbe/globuschat/internal/types"
)

// EngineConfig represents the configuration for the completion engine.
type EngineConfig struct {
	Model   string
	BaseURL string // Ollama server URL
}

// Engine produces text completions through a locally hosted Ollama
// model. It implements types.CompletionService.
type Engine struct {
	config EngineConfig
	llm    llms.Model
}

// NewWithConfig creates a new Engine with the given configuration.
func NewWithConfig(config EngineConfig) (*Engine, error) {
	if config.Model == "" {
		config.Model = "llama3.2" // Default Ollama model
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}

	model, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &Engine{
		config: config,
		llm:    model,
	}, nil
}

// Complete runs a single completion. Stop sequences terminate
// generation as soon as any of them is produced.
func (e *Engine) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if len(req.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(req.Stop))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, e.llm, req.Prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("completion error: %w", err)
	}
	return strings.TrimSpace(out), nil
}
