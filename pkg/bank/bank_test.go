package bank_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oakhigbe/globuschat/pkg/bank"
)

type sheet struct {
	name string
	rows [][]interface{}
}

func saveWorkbook(t *testing.T, sheets []sheet) string {
	t.Helper()

	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cellRef, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cellRef, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "customers.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testSheets() []sheet {
	customerHeader := []interface{}{
		"ID", "Account_No", "Account_Name", "Currency", "Account_Type",
		"Product_Type", "Product_Description", "Current_Balance", "Account_Open_Date",
	}
	cardHeader := []interface{}{
		"Account_No", "Card_Issuer", "Card_Type", "Card_Activation_Date", "Status",
	}
	txnHeader := []interface{}{
		"Account_No", "Transaction_Date", "Transaction_Type", "Transaction_Amount",
		"Destination_Account", "Narration", "Destination_Account_Bank",
		"Transaction_Status", "Failure_Reason",
	}

	txnRows := [][]interface{}{
		txnHeader,
		{"100023489", "2024-03-01 10:00:00", "Debit", "5,000.00", "0441236789", "transfer 01", "GTBank", "Successful", ""},
		{"100023489", "2024-03-02 10:00:00", "Credit", "12,000.00", "", "transfer 02", "", "Successful", ""},
		{"100023489", "2024-03-03 10:00:00", "Debit", "3,500.00", "0441236789", "transfer 03", "GTBank", "Failed", "Insufficient funds"},
		{"100023489", "2024-03-04 10:00:00", "Debit", "800.00", "0441236789", "transfer 04", "GTBank", "Successful", ""},
		{"100023489", "2024-03-05 10:00:00", "Credit", "45,000.00", "", "transfer 05", "", "Successful", ""},
		{"100023489", "2024-03-06 10:00:00", "Debit", "1,200.00", "0441236789", "transfer 06", "GTBank", "Successful", ""},
	}

	return []sheet{
		{name: "Customer", rows: [][]interface{}{
			customerHeader,
			{"1", "100023489", "Adaeze Okafor", "NGN", "Savings", "Classic Savings", "Classic Savings Account", "1,250,000.50", "2019-05-12"},
			{"1", "100023490", "Adaeze Okafor", "USD", "Domiciliary", "Dom Savings", "Domiciliary Account", "3200.00", "2021-02-01"},
			{"2", "200045671", "Chinedu Eze", "NGN", "Current", "Classic Current", "Classic Current Account", "98,400.00", "2020-08-19"},
		}},
		{name: "Card", rows: [][]interface{}{
			cardHeader,
			{"100023489", "Visa", "Credit", "2022-01-15", "Active"},
			{"100023489", "Mastercard", "Debit", "2023-03-02", "Blocked"},
			{"999999999", "Verve", "Debit", "2023-07-20", "Active"},
		}},
		{name: "Transaction", rows: txnRows},
	}
}

func loadTestDirectory(t *testing.T) *bank.Directory {
	t.Helper()
	d, err := bank.LoadWorkbook(saveWorkbook(t, testSheets()))
	require.NoError(t, err)
	return d
}

func TestLoadWorkbook_Counts(t *testing.T) {
	d := loadTestDirectory(t)

	assert.Equal(t, 2, d.Customers())
	assert.Equal(t, 3, d.Accounts())
}

func TestLoadWorkbook_MissingColumn(t *testing.T) {
	sheets := testSheets()
	// Drop the Status column from the Card sheet.
	for i, row := range sheets[1].rows {
		sheets[1].rows[i] = row[:4]
	}

	_, err := bank.LoadWorkbook(saveWorkbook(t, sheets))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "Status"`)
}

func TestLookup(t *testing.T) {
	d := loadTestDirectory(t)

	customer := d.Lookup("100023489")
	require.NotNil(t, customer)
	assert.Equal(t, "Adaeze Okafor", customer.Name)
	assert.Len(t, customer.Accounts, 2)
	// The card row for the unknown account was skipped.
	assert.Len(t, customer.Cards, 2)

	assert.NotNil(t, d.Lookup(" 100023489 "))
	assert.NotNil(t, d.Lookup("0100023489"))
	assert.Nil(t, d.Lookup("555555555"))
	assert.Nil(t, d.Lookup("not-a-number"))
	assert.Nil(t, d.Lookup(""))
}

func TestLookup_ReturnsIndependentCopy(t *testing.T) {
	d := loadTestDirectory(t)

	first := d.Lookup("100023489")
	result := bank.BlockCard(first, "Visa", "Credit")
	require.True(t, result.Success)

	second := d.Lookup("100023489")
	assert.Equal(t, "Active", second.Cards[0].Status)
}

func TestBlockCard(t *testing.T) {
	d := loadTestDirectory(t)
	customer := d.Lookup("100023489")

	t.Run("success", func(t *testing.T) {
		result := bank.BlockCard(customer, "visa", "credit")
		assert.True(t, result.Success)
		require.NotNil(t, result.Reference)
		assert.True(t, strings.HasPrefix(*result.Reference, "BLK-"))
		assert.Len(t, *result.Reference, 12)
		assert.Contains(t, result.Message, "Visa Credit card linked to account 100023489")
		assert.Equal(t, "Blocked", customer.Cards[0].Status)
	})

	t.Run("already blocked", func(t *testing.T) {
		result := bank.BlockCard(customer, "Mastercard", "Debit")
		assert.False(t, result.Success)
		assert.True(t, result.AlreadyBlocked)
		assert.Equal(t, "This card is already blocked.", result.Message)
		assert.Nil(t, result.Reference)
	})

	t.Run("not found", func(t *testing.T) {
		result := bank.BlockCard(customer, "Verve", "Debit")
		assert.False(t, result.Success)
		assert.False(t, result.AlreadyBlocked)
		assert.Equal(t, "No Verve Debit card found on this account.", result.Message)
	})
}

func TestFormatCustomerContext(t *testing.T) {
	d := loadTestDirectory(t)
	customer := d.Lookup("100023489")

	context := bank.FormatCustomerContext(customer)

	assert.Contains(t, context, "Customer Name: Adaeze Okafor")
	assert.Contains(t, context, "Account No: 100023489")
	assert.Contains(t, context, "NGN 1,250,000.50")
	assert.Contains(t, context, "Visa Credit Card | Status: Active")
	assert.Contains(t, context, "RECENT TRANSACTIONS (last 5 per account)")

	// Newest first, capped at five: the oldest row falls off.
	assert.Contains(t, context, "transfer 06")
	assert.Contains(t, context, "transfer 02")
	assert.NotContains(t, context, "transfer 01")

	// Failed transactions carry their reason.
	assert.Contains(t, context, "Failed: Insufficient funds")
}

func TestFormatCards_NoCards(t *testing.T) {
	d := loadTestDirectory(t)
	customer := d.Lookup("200045671")

	assert.Equal(t, "No cards found on this account.", bank.FormatCards(customer))
}
