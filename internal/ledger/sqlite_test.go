package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreReplaceAndQuery(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.ReplaceAll(ctx, sampleTransactions()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	txs, err := s.Transactions(ctx, "2024-01-")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Payee != "BANK FEE" || txs[1].Payee != "SUPERMARKET" {
		t.Errorf("artifact order not preserved: %s, %s", txs[0].Payee, txs[1].Payee)
	}
	if !txs[1].Amount.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("amount = %s, want -40", txs[1].Amount)
	}
	if txs[1].Extra["Memo"] != "weekly" {
		t.Errorf("extra columns lost: %+v", txs[1].Extra)
	}

	totals, err := s.CategoryTotals(ctx, "2024-01-")
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}
	if totals[0].Category != "Fees" || !totals[0].Total.Equal(decimal.NewFromInt(-5)) {
		t.Errorf("Fees total = %+v", totals[0])
	}
}

func TestSQLiteStoreReplaceIsFull(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.ReplaceAll(ctx, sampleTransactions()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	// Second run with a smaller ledger fully replaces the first.
	if err := s.ReplaceAll(ctx, sampleTransactions()[:1]); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	txs, err := s.Transactions(ctx, "2024-")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("expected 1 transaction after replace, got %d", len(txs))
	}
}

func TestSQLiteStoreEmptyPeriod(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.ReplaceAll(ctx, sampleTransactions()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	totals, err := s.CategoryTotals(ctx, "2030-01-")
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("expected no totals, got %d", len(totals))
	}
}
