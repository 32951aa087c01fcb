package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
)

func debitAccount() core.Account {
	return core.Account{Name: "checking", Kind: core.Debit, Currency: "EUR", Files: []string{"checking.csv"}}
}

func creditAccount() core.Account {
	return core.Account{Name: "card", Kind: core.Credit, Currency: "EUR", Files: []string{"card.csv"}}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   rune
	}{
		{"comma", "Date,Payee,Category,Amount", ','},
		{"semicolon", "Date;Payee;Category;Amount", ';'},
		{"tab", "Date\tPayee\tCategory\tAmount", '\t'},
		{"semicolon with commas in values", "Date;Payee, extra;Category;Amount", ';'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffDelimiter(tt.header))
		})
	}
}

func TestParseStatement_Debit(t *testing.T) {
	content := `Date,Payee,Category,Amount
2024-03-05,SUPERMARKET,Groceries,-40.00
2024-03-07,EMPLOYER,Salary,2500.00`

	txs, err := ParseStatement(content, debitAccount())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "checking", txs[0].Account)
	assert.Equal(t, "2024-03-05", txs[0].Date)
	assert.Equal(t, "SUPERMARKET", txs[0].Payee)
	assert.Equal(t, "Groceries", txs[0].Category)
	// Debit amounts keep the raw sign
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(-40)))
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromFloat(2500)))
}

func TestParseStatement_CreditNegatesAmounts(t *testing.T) {
	content := `Date,Payee,Category,Amount
2024-03-05,RESTAURANT,Restaurants,30.00
2024-03-09,REFUND,Shopping,-12.50`

	txs, err := ParseStatement(content, creditAccount())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Credit statements report charges as positive amounts owed
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(-30)))
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromFloat(12.5)))
}

func TestParseStatement_Semicolon(t *testing.T) {
	content := `Date;Payee;Category;Amount
2024-03-05;BAKERY, DOWNTOWN;Groceries;-3,50`

	txs, err := ParseStatement(content, debitAccount())
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "BAKERY, DOWNTOWN", txs[0].Payee)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(-3.5)))
}

func TestParseStatement_ExtraColumnsPassThrough(t *testing.T) {
	content := `Date,Payee,Category,Amount,Balance,Memo
2024-03-05,SUPERMARKET,Groceries,-40.00,960.00,weekly shop`

	txs, err := ParseStatement(content, debitAccount())
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "960.00", txs[0].Extra["Balance"])
	assert.Equal(t, "weekly shop", txs[0].Extra["Memo"])
}

func TestParseStatement_MissingRequiredColumn(t *testing.T) {
	content := `Date,Payee,Amount
2024-03-05,SUPERMARKET,-40.00`

	_, err := ParseStatement(content, debitAccount())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Category")
}

func TestParseStatement_BadAmountIsFatal(t *testing.T) {
	content := `Date,Payee,Category,Amount
2024-03-05,SUPERMARKET,Groceries,-40.00
2024-03-06,SUPERMARKET,Groceries,n/a`

	_, err := ParseStatement(content, debitAccount())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "row 3")
}

func TestParseStatement_UnvalidatedDatesPassThrough(t *testing.T) {
	// No date-format validation beyond assuming ISO-sortable strings.
	content := `Date,Payee,Category,Amount
someday,SUPERMARKET,Groceries,-40.00`

	txs, err := ParseStatement(content, debitAccount())
	require.NoError(t, err)
	assert.Equal(t, "someday", txs[0].Date)
}

func TestParseStatement_HeaderOnly(t *testing.T) {
	txs, err := ParseStatement("Date,Payee,Category,Amount\n", debitAccount())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParseStatement_Empty(t *testing.T) {
	txs, err := ParseStatement("", debitAccount())
	require.NoError(t, err)
	assert.Empty(t, txs)
}
