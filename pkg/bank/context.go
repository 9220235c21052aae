package bank

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakhigbe/globuschat/internal/models"
)

// recentTransactionLimit caps the per-account transaction listing in
// the customer context block.
const recentTransactionLimit = 5

// FormatCustomerContext builds the structured profile block injected
// into the system prompt: accounts, cards, and the last 5 transactions
// per account, newest first.
func FormatCustomerContext(customer *models.Customer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer Name: %s\n", customer.Name)

	b.WriteString("\nACCOUNTS:\n")
	for _, acc := range customer.Accounts {
		fmt.Fprintf(&b, "  - Account No: %s | %s (%s, %s) | Balance: %s %s | Opened: %s\n",
			acc.AccountNo, acc.ProductDescription, acc.AccountType, acc.Currency,
			acc.Currency, formatAmount(acc.CurrentBalance), acc.OpenDate)
	}

	if len(customer.Cards) > 0 {
		b.WriteString("\nCARDS:\n")
		for _, card := range customer.Cards {
			fmt.Fprintf(&b, "  - Account %s | %s %s Card | Status: %s | Activated: %s\n",
				card.AccountNo, card.Issuer, card.Type, card.Status, card.ActivationDate)
		}
	}

	if len(customer.TransactionsByAccount) > 0 {
		fmt.Fprintf(&b, "\nRECENT TRANSACTIONS (last %d per account):\n", recentTransactionLimit)
		for _, acc := range customer.Accounts {
			txns, ok := customer.TransactionsByAccount[acc.AccountNo]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  Account %s:\n", acc.AccountNo)
			if len(txns) > recentTransactionLimit {
				txns = txns[:recentTransactionLimit]
			}
			for _, t := range txns {
				b.WriteString("    " + formatTransaction(t) + "\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatCards lists every linked card for the card-block instruction
// block.
func FormatCards(customer *models.Customer) string {
	if len(customer.Cards) == 0 {
		return "No cards found on this account."
	}
	lines := make([]string, 0, len(customer.Cards))
	for i, card := range customer.Cards {
		lines = append(lines, fmt.Sprintf(
			"  Card %d: %s %s Card | Linked to Account: %s | Status: %s",
			i+1, card.Issuer, card.Type, card.AccountNo, card.Status))
	}
	return strings.Join(lines, "\n")
}

func formatTransaction(t models.Transaction) string {
	when := t.DateRaw
	if !t.Date.IsZero() {
		when = t.Date.Format("2006-01-02 15:04")
	}

	sign := "-"
	if strings.EqualFold(t.Type, "Credit") {
		sign = "+"
	}
	amount := t.Amount
	if amount < 0 {
		amount = -amount
	}

	line := fmt.Sprintf("[%s] %s %s%s - %s (%s) [%s",
		when, t.Type, sign, formatAmount(amount), t.Narration, t.DestBank, t.Status)
	if t.FailureReason != "" {
		line += " | Failed: " + t.FailureReason
	}
	return line + "]"
}

// formatAmount renders 1234567.8 as "1,234,567.80".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
