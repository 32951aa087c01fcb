package core

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionJSONRoundTrip(t *testing.T) {
	tx := Transaction{
		Account:  "checking",
		Date:     "2024-03-07",
		Payee:    "SUPERMARKET 42",
		Category: "Groceries",
		Amount:   amt("-40"),
		Extra:    map[string]string{"Balance": "123.45", "Memo": "weekly"},
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Account != tx.Account || got.Date != tx.Date || got.Payee != tx.Payee || got.Category != tx.Category {
		t.Errorf("round trip changed fixed fields: %+v", got)
	}
	if !got.Amount.Equal(tx.Amount) {
		t.Errorf("Amount = %s, want %s", got.Amount, tx.Amount)
	}
	if got.Extra["Balance"] != "123.45" || got.Extra["Memo"] != "weekly" {
		t.Errorf("extra columns lost: %+v", got.Extra)
	}
}

func TestTransactionJSONStableOutput(t *testing.T) {
	tx := Transaction{
		Account:  "card",
		Date:     "2024-03-07",
		Payee:    "CAFE",
		Category: "Restaurants",
		Amount:   amt("-3.5"),
		Extra:    map[string]string{"B": "2", "A": "1", "C": "3"},
	}

	first, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(tx)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("output not stable:\n%s\n%s", first, again)
		}
	}

	want := `{"Account":"card","Date":"2024-03-07","Payee":"CAFE","Category":"Restaurants","Amount":-3.50,"A":"1","B":"2","C":"3"}`
	if string(first) != want {
		t.Errorf("marshal = %s, want %s", first, want)
	}
}

func TestPeriodPrefix(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{Period{2024, 3}, "2024-03-"},
		{Period{2024, 12}, "2024-12-"},
		{Period{999, 1}, "0999-01-"},
	}
	for _, tt := range tests {
		if got := tt.period.Prefix(); got != tt.want {
			t.Errorf("Prefix(%+v) = %q, want %q", tt.period, got, tt.want)
		}
	}
}

func TestPeriodNavigation(t *testing.T) {
	p := Period{Year: 2024, Month: 1}
	if prev := p.Previous(); prev != (Period{Year: 2023, Month: 12}) {
		t.Errorf("Previous() = %+v", prev)
	}
	p = Period{Year: 2024, Month: 12}
	if next := p.Next(); next != (Period{Year: 2025, Month: 1}) {
		t.Errorf("Next() = %+v", next)
	}
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	if p := CurrentPeriod(now); p != (Period{Year: 2024, Month: 3}) {
		t.Errorf("CurrentPeriod = %+v", p)
	}
}

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
	}{
		{"valid debit", Account{Name: "checking", Kind: Debit, Currency: "EUR", Files: []string{"a.csv"}}, false},
		{"valid credit", Account{Name: "card", Kind: Credit, Currency: "EUR", Files: []string{"b.csv"}}, false},
		{"empty name", Account{Kind: Debit, Files: []string{"a.csv"}}, true},
		{"bad kind", Account{Name: "x", Kind: "savings", Files: []string{"a.csv"}}, true},
		{"no files", Account{Name: "x", Kind: Debit}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
