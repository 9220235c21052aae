package respond

import (
	"fmt"
	"strings"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/pkg/bank"
)

const baseSystem = `You are a helpful, professional customer support assistant for Globus Bank Nigeria.
You assist customers with enquiries about their accounts, transactions, cards, loan products, savings accounts, and investment products.
Be warm, accurate, and concise. Use Nigerian Naira (NGN) unless the account is a domiciliary account.
Never invent interest rates, fees, or product terms not provided to you. If you are unsure, advise the customer to visit a branch or call Globus Bank customer service.`

const customerBlock = `The customer is authenticated. Use their full profile below to give accurate, personalised responses.
Do not reveal email addresses unless directly asked.

CUSTOMER PROFILE:
%s`

const anonymousBlock = `This user is NOT authenticated: no valid account number was provided.
You may ONLY discuss general Globus Bank product information.
If they ask about account details, balances, transactions, or cards, respond with:
"` + AnonymousRestrictionMsg + `"`

const docsBlock = `Use the following Globus Bank product documentation to answer accurately.
Do not invent product features, rates, or terms beyond what is documented here.

PRODUCT DOCUMENTATION:
%s`

const cardBlockInstructions = `The customer wants to block one of their ATM/debit cards.

INSTRUCTIONS:
- If the customer has only ONE card, confirm which card it is (issuer, type, account) and ask them to confirm they want it blocked before proceeding.
- If the customer has MULTIPLE cards, list each card clearly (issuer, card type, linked account number) and ask them to specify which one they want blocked.
- Once the customer confirms a specific card, acknowledge the request and inform them that the card block has been initiated and they will receive a confirmation shortly.
- Do not block any card without explicit customer confirmation.
- If no cards are found on the account, inform the customer and advise them to visit a branch.

CUSTOMER CARDS:
%s`

// section is one named block of the system prompt. Names keep the
// assembly order explicit and testable; only the text is rendered.
type section struct {
	name string
	text string
}

// buildSections assembles the system prompt as an ordered section list.
func buildSections(req Request) []section {
	sections := []section{{name: "persona", text: baseSystem}}

	if req.Customer != nil {
		sections = append(sections, section{
			name: "customer_context",
			text: fmt.Sprintf(customerBlock, bank.FormatCustomerContext(req.Customer)),
		})
		if req.Intent == models.IntentCardBlockRequest {
			sections = append(sections, section{
				name: "card_block",
				text: fmt.Sprintf(cardBlockInstructions, bank.FormatCards(req.Customer)),
			})
		}
	} else {
		sections = append(sections, section{name: "anonymous", text: anonymousBlock})
	}

	if req.ProductDocs != "" {
		sections = append(sections, section{
			name: "product_docs",
			text: fmt.Sprintf(docsBlock, req.ProductDocs),
		})
	}

	return sections
}

// BuildPrompt renders the ordered sections, the conversation history,
// and the new message into the chat template the completion model
// expects.
func BuildPrompt(req Request) string {
	parts := make([]string, 0, 4)
	for _, s := range buildSections(req) {
		parts = append(parts, s.text)
	}
	system := strings.Join(parts, "\n\n")

	var b strings.Builder
	b.WriteString("<|system|>\n" + strings.TrimSpace(system) + "\n<|end|>\n")

	for _, turn := range req.History {
		tag := "<|user|>"
		if turn.Role == "assistant" {
			tag = "<|assistant|>"
		}
		b.WriteString(tag + "\n" + turn.Content + "\n<|end|>\n")
	}

	b.WriteString("<|user|>\n" + req.Message + "\n<|end|>\n<|assistant|>\n")
	return b.String()
}
