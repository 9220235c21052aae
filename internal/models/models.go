package models

import "time"

// Intent is one of the closed set of chat intent labels.
type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentGeneralInquiry     Intent = "general_inquiry"
	IntentAccountInformation Intent = "account_information"
	IntentProductInquiry     Intent = "product_inquiry"
	IntentCardBlockRequest   Intent = "card_block_request"
)

// DefaultIntent is returned whenever classification cannot produce a
// confident label.
const DefaultIntent = IntentGeneralInquiry

// Intents returns the closed label set in enumeration order. The order
// matters: substring fallback matching scans labels in this order.
func Intents() []Intent {
	return []Intent{
		IntentGreeting,
		IntentGeneralInquiry,
		IntentAccountInformation,
		IntentProductInquiry,
		IntentCardBlockRequest,
	}
}

// Valid reports whether the label belongs to the closed set.
func (i Intent) Valid() bool {
	for _, known := range Intents() {
		if i == known {
			return true
		}
	}
	return false
}

// DocumentChunk is one retrievable piece of the product documentation.
// Chunks are built once at startup and never mutated.
type DocumentChunk struct {
	ID   int
	Text string
}

// ScoredChunk is a retrieval result: a chunk with its cosine similarity
// to the query.
type ScoredChunk struct {
	Chunk DocumentChunk
	Score float64
}

// ChatTurn is one entry of the conversation history.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Account is one bank account row from the Customer sheet.
type Account struct {
	AccountNo          string
	AccountName        string
	Currency           string
	AccountType        string
	ProductType        string
	ProductDescription string
	CurrentBalance     float64
	OpenDate           string
}

// Card is one row from the Card sheet.
type Card struct {
	AccountNo      string
	Issuer         string
	Type           string
	ActivationDate string
	Status         string
}

// Transaction is one row from the Transaction sheet. Date is the parsed
// transaction timestamp; unparseable dates stay zero and sort last.
type Transaction struct {
	Date          time.Time
	DateRaw       string
	Type          string
	Amount        float64
	Destination   string
	Narration     string
	DestBank      string
	Status        string
	FailureReason string
}

// Customer is the unified profile built from all three workbook sheets.
// The directory hands out copies, so a session may flip card status on
// its own Customer without touching the shared table.
type Customer struct {
	ID                    int
	Name                  string
	Accounts              []Account
	Cards                 []Card
	TransactionsByAccount map[string][]Transaction
}

// Clone returns a deep copy of the customer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := &Customer{
		ID:       c.ID,
		Name:     c.Name,
		Accounts: append([]Account(nil), c.Accounts...),
		Cards:    append([]Card(nil), c.Cards...),
	}
	if c.TransactionsByAccount != nil {
		out.TransactionsByAccount = make(map[string][]Transaction, len(c.TransactionsByAccount))
		for acc, txns := range c.TransactionsByAccount {
			out.TransactionsByAccount[acc] = append([]Transaction(nil), txns...)
		}
	}
	return out
}
