package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the normalized ledger in a SQLite database. Aggregation
// happens in SQL over integer cents; the artifact order is preserved through
// an explicit sequence column.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Reload is a no-op: queries always hit the database.
func (s *SQLiteStore) Reload(_ context.Context) error { return nil }

// ReplaceAll swaps the full ledger in one transaction. The ingestion
// pipeline is all-or-nothing, so the previous ledger stays intact if
// anything fails mid-load.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT INTO transactions (seq, account, date, payee, category, amount_cents, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		var extra sql.NullString
		if len(t.Extra) > 0 {
			data, err := json.Marshal(t.Extra)
			if err != nil {
				return fmt.Errorf("marshal extra columns: %w", err)
			}
			extra = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, t.Account, t.Date, t.Payee, t.Category, core.Cents(t.Amount), extra); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger replaced in SQLite", "transactions", len(txs))
	return nil
}

func (s *SQLiteStore) Transactions(ctx context.Context, prefix string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account, date, payee, category, amount_cents, extra
		FROM transactions
		WHERE date LIKE ? || '%'
		ORDER BY seq`, prefix)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t     core.Transaction
			cents int64
			extra sql.NullString
		)
		if err := rows.Scan(&t.Account, &t.Date, &t.Payee, &t.Category, &cents, &extra); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = core.FromCents(cents)
		if extra.Valid {
			if err := json.Unmarshal([]byte(extra.String), &t.Extra); err != nil {
				return nil, fmt.Errorf("parse extra columns: %w", err)
			}
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *SQLiteStore) CategoryTotals(ctx context.Context, prefix string) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE date LIKE ? || '%'
		GROUP BY category
		ORDER BY MIN(seq)`, prefix)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var (
			category string
			cents    int64
		)
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, core.CategoryTotal{Category: category, Total: core.FromCents(cents)})
	}
	return totals, rows.Err()
}
