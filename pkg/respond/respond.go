// Package respond assembles the support reply for a conversation turn.
// Access control for anonymous sessions is enforced here, before any
// model call; intent labels are advisory and never trusted for
// security decisions.
package respond

import (
	"context"
	"log"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/internal/types"
)

// Fixed user-facing strings. These are returned verbatim, without a
// model call.
const (
	AnonymousRestrictionMsg = "I can only provide general product information for unauthenticated sessions. " +
		"Please provide a valid account number for account-specific assistance."

	CardBlockAnonymousMsg = "Card blocking requires a verified account. " +
		"Please provide your account number so I can assist you."

	ApologyMsg = "I'm having trouble responding right now. Please try again in a moment."
)

type AssemblerConfig struct {
	MaxTokens   int
	Temperature float64
}

type Assembler struct {
	llm    types.CompletionService
	config AssemblerConfig
}

func NewWithConfig(llm types.CompletionService, config AssemblerConfig) *Assembler {
	if config.MaxTokens == 0 {
		config.MaxTokens = 512
	}
	if config.Temperature == 0 {
		config.Temperature = 0.4
	}
	return &Assembler{
		llm:    llm,
		config: config,
	}
}

// Request carries one conversation turn through the assembler.
// Customer is nil for anonymous sessions; ProductDocs is empty when no
// retrieval ran.
type Request struct {
	Message     string
	Intent      models.Intent
	Customer    *models.Customer
	ProductDocs string
	History     []models.ChatTurn
}

// Respond produces the assistant reply. It never returns an error:
// anonymous restricted intents get their fixed message, and a
// completion failure degrades to the apology string.
func (a *Assembler) Respond(ctx context.Context, req Request) string {
	if req.Customer == nil {
		switch req.Intent {
		case models.IntentAccountInformation:
			return AnonymousRestrictionMsg
		case models.IntentCardBlockRequest:
			return CardBlockAnonymousMsg
		}
	}

	reply, err := a.llm.Complete(ctx, types.CompletionRequest{
		Prompt:      BuildPrompt(req),
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		log.Printf("[respond] generation error: %v", err)
		return ApologyMsg
	}
	return reply
}
