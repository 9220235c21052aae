package bank

import (
	"strings"

	"github.com/google/uuid"

	"github.com/oakhigbe/globuschat/internal/models"
)

// Directory is the read-only customer table, immutable after
// LoadWorkbook and safe for concurrent lookups.
type Directory struct {
	customersByID map[int]*models.Customer
	accountOwner  map[string]int
}

// NewDirectory builds a directory from already-assembled customers.
// LoadWorkbook is the production path; this one serves fixtures and
// alternative loaders.
func NewDirectory(customers ...*models.Customer) *Directory {
	d := &Directory{
		customersByID: make(map[int]*models.Customer, len(customers)),
		accountOwner:  make(map[string]int),
	}
	for _, customer := range customers {
		d.customersByID[customer.ID] = customer
		for _, acc := range customer.Accounts {
			d.accountOwner[acc.AccountNo] = customer.ID
		}
	}
	return d
}

// Lookup resolves an account number to the owning customer's full
// profile, or nil when the account is unknown. The returned customer is
// a deep copy: sessions may mutate it (the card-block status flip)
// without touching the shared table.
func (d *Directory) Lookup(accountNumber string) *models.Customer {
	accountNo := normalizeAccountNo(accountNumber)
	if accountNo == "" {
		return nil
	}
	id, ok := d.accountOwner[accountNo]
	if !ok {
		return nil
	}
	return d.customersByID[id].Clone()
}

// Customers returns the number of distinct customers loaded.
func (d *Directory) Customers() int { return len(d.customersByID) }

// Accounts returns the number of account rows loaded.
func (d *Directory) Accounts() int { return len(d.accountOwner) }

// BlockResult is the outcome of a simulated card block.
type BlockResult struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Reference *string `json:"reference"`

	AlreadyBlocked bool `json:"-"`
}

// BlockCard flips the matching card to Blocked on the session's
// customer copy. Matching is case-insensitive on issuer and type.
func BlockCard(customer *models.Customer, issuer, cardType string) BlockResult {
	for i := range customer.Cards {
		card := &customer.Cards[i]
		if !strings.EqualFold(card.Issuer, issuer) || !strings.EqualFold(card.Type, cardType) {
			continue
		}

		if strings.EqualFold(card.Status, "Blocked") {
			return BlockResult{
				Message:        "This card is already blocked.",
				AlreadyBlocked: true,
			}
		}

		card.Status = "Blocked"
		ref := "BLK-" + strings.ToUpper(uuid.NewString()[:8])
		return BlockResult{
			Success:   true,
			Message:   "Your " + card.Issuer + " " + card.Type + " card linked to account " + card.AccountNo + " has been successfully blocked.",
			Reference: &ref,
		}
	}

	return BlockResult{
		Message: "No " + issuer + " " + cardType + " card found on this account.",
	}
}
