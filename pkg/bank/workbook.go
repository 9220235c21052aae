// Package bank loads the customer workbook and answers account lookups.
// The workbook has three sheets (Customer, Card, Transaction); all rows
// are read once at startup into typed records indexed by account number.
package bank

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/oakhigbe/globuschat/internal/models"
)

const (
	sheetCustomer    = "Customer"
	sheetCard        = "Card"
	sheetTransaction = "Transaction"
)

// LoadWorkbook parses all three sheets and builds the directory.
// A missing sheet or a missing required column fails fast with a
// descriptive error.
func LoadWorkbook(path string) (*Directory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	d := &Directory{
		customersByID: make(map[int]*models.Customer),
		accountOwner:  make(map[string]int),
	}

	if err := loadCustomers(f, d); err != nil {
		return nil, err
	}
	if err := loadCards(f, d); err != nil {
		return nil, err
	}
	if err := loadTransactions(f, d); err != nil {
		return nil, err
	}

	// Newest first, so "last 5 per account" is a prefix.
	for _, customer := range d.customersByID {
		for acc := range customer.TransactionsByAccount {
			txns := customer.TransactionsByAccount[acc]
			sort.SliceStable(txns, func(i, j int) bool {
				return txns[i].Date.After(txns[j].Date)
			})
		}
	}

	return d, nil
}

// sheetColumns maps header names to column positions, verifying that
// every required column exists.
func sheetColumns(f *excelize.File, sheet string, required []string) ([][]string, map[string]int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		cols[strings.TrimSpace(header)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("sheet %q missing required column %q (found: %v)", sheet, name, rows[0])
		}
	}
	return rows[1:], cols, nil
}

func loadCustomers(f *excelize.File, d *Directory) error {
	rows, cols, err := sheetColumns(f, sheetCustomer, []string{
		"ID", "Account_No", "Account_Name", "Currency", "Account_Type",
		"Product_Type", "Product_Description", "Current_Balance", "Account_Open_Date",
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(cell(row, cols["ID"])))
		if err != nil {
			continue // skip rows without a numeric customer ID
		}
		accountNo := normalizeAccountNo(cell(row, cols["Account_No"]))
		if accountNo == "" {
			continue
		}

		account := models.Account{
			AccountNo:          accountNo,
			AccountName:        cell(row, cols["Account_Name"]),
			Currency:           cell(row, cols["Currency"]),
			AccountType:        cell(row, cols["Account_Type"]),
			ProductType:        cell(row, cols["Product_Type"]),
			ProductDescription: cell(row, cols["Product_Description"]),
			CurrentBalance:     parseAmount(cell(row, cols["Current_Balance"])),
			OpenDate:           cell(row, cols["Account_Open_Date"]),
		}

		customer, ok := d.customersByID[id]
		if !ok {
			customer = &models.Customer{
				ID:                    id,
				Name:                  account.AccountName,
				TransactionsByAccount: make(map[string][]models.Transaction),
			}
			d.customersByID[id] = customer
		}
		customer.Accounts = append(customer.Accounts, account)
		d.accountOwner[accountNo] = id
	}

	return nil
}

func loadCards(f *excelize.File, d *Directory) error {
	rows, cols, err := sheetColumns(f, sheetCard, []string{
		"Account_No", "Card_Issuer", "Card_Type", "Card_Activation_Date", "Status",
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		accountNo := normalizeAccountNo(cell(row, cols["Account_No"]))
		id, ok := d.accountOwner[accountNo]
		if !ok {
			continue // card for an unknown account
		}
		d.customersByID[id].Cards = append(d.customersByID[id].Cards, models.Card{
			AccountNo:      accountNo,
			Issuer:         cell(row, cols["Card_Issuer"]),
			Type:           cell(row, cols["Card_Type"]),
			ActivationDate: cell(row, cols["Card_Activation_Date"]),
			Status:         cell(row, cols["Status"]),
		})
	}

	return nil
}

func loadTransactions(f *excelize.File, d *Directory) error {
	rows, cols, err := sheetColumns(f, sheetTransaction, []string{
		"Account_No", "Transaction_Date", "Transaction_Type", "Transaction_Amount",
		"Destination_Account", "Narration", "Destination_Account_Bank",
		"Transaction_Status", "Failure_Reason",
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		accountNo := normalizeAccountNo(cell(row, cols["Account_No"]))
		id, ok := d.accountOwner[accountNo]
		if !ok {
			continue
		}
		raw := cell(row, cols["Transaction_Date"])
		txn := models.Transaction{
			Date:          parseDate(raw),
			DateRaw:       raw,
			Type:          cell(row, cols["Transaction_Type"]),
			Amount:        parseAmount(cell(row, cols["Transaction_Amount"])),
			Destination:   cell(row, cols["Destination_Account"]),
			Narration:     cell(row, cols["Narration"]),
			DestBank:      cell(row, cols["Destination_Account_Bank"]),
			Status:        cell(row, cols["Transaction_Status"]),
			FailureReason: cell(row, cols["Failure_Reason"]),
		}
		customer := d.customersByID[id]
		customer.TransactionsByAccount[accountNo] = append(customer.TransactionsByAccount[accountNo], txn)
	}

	return nil
}

// cell tolerates ragged rows, which excelize produces when trailing
// cells are empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizeAccountNo canonicalizes an account number to its decimal
// form. Non-numeric values are rejected.
func normalizeAccountNo(s string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// dateLayouts covers the display formats excelize yields for the
// workbook's date cells.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"01-02-06",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"1/2/2006",
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{} // unparseable dates sort last
}
