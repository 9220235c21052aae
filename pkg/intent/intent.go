// Package intent classifies user messages into the closed intent set.
// Classification is advisory: any failure degrades to the default label
// and never reaches the caller.
package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/internal/types"
)

// stopSequences terminate generation at the first newline or
// end-of-turn marker so the model cannot ramble past the label.
var stopSequences = []string{"\n", "<|end|>", "<|user|>"}

type Resolver struct {
	llm       types.CompletionService
	maxTokens int
}

func NewResolver(llm types.CompletionService, maxTokens int) *Resolver {
	if maxTokens <= 0 {
		maxTokens = 20
	}
	return &Resolver{
		llm:       llm,
		maxTokens: maxTokens,
	}
}

// Classify maps a message to one of the intent labels. It never returns
// an error: completion failures and unparseable output both resolve to
// models.DefaultIntent.
func (r *Resolver) Classify(ctx context.Context, message string) models.Intent {
	raw, err := r.llm.Complete(ctx, types.CompletionRequest{
		Prompt:      buildPrompt(message),
		MaxTokens:   r.maxTokens,
		Temperature: 0, // greedy decoding for a deterministic label
		Stop:        stopSequences,
	})
	if err != nil {
		log.Printf("[intent] classification error: %v", err)
		return models.DefaultIntent
	}

	return parseLabel(raw)
}

// parseLabel applies the parse policy in order: exact first token,
// then substring scan in label-enumeration order, then the fallback.
func parseLabel(raw string) models.Intent {
	fields := strings.Fields(raw)
	if len(fields) > 0 {
		first := strings.Trim(strings.ToLower(fields[0]), `.,!?"'`)
		if label := models.Intent(first); label.Valid() {
			return label
		}
	}

	lower := strings.ToLower(raw)
	for _, label := range models.Intents() {
		if strings.Contains(lower, string(label)) {
			return label
		}
	}

	return models.DefaultIntent
}

func buildPrompt(message string) string {
	return fmt.Sprintf(`<|system|>
You are an intent classifier for a Globus Bank customer support chatbot.

Classify the user message into exactly one intent from this list:
- greeting: user is saying hello or starting a conversation
- general_inquiry: broad or unclear question not specifically about their account or a product
- account_information: question about account balance, transactions, account status, or account details
- product_inquiry: question about bank products (loans, savings, investments, debit cards, features, eligibility)
- card_block_request: user wants to block, freeze, or deactivate an ATM or debit card

Reply with ONLY the intent name. No explanation. No punctuation. Just the single intent.
<|end|>
<|user|>
Message: %s
<|assistant|>
Intent:`, message)
}
