package ledger

import (
	"context"

	"budget/internal/core"
)

// Store serves the normalized ledger to the dashboard. Implementations are
// read-only from the dashboard's perspective; only the ingestion pipeline
// replaces the data.
type Store interface {
	// Transactions returns the transactions whose date starts with prefix,
	// in artifact order.
	Transactions(ctx context.Context, prefix string) ([]core.Transaction, error)

	// CategoryTotals aggregates amounts per category for the given period
	// prefix, in first-seen category order.
	CategoryTotals(ctx context.Context, prefix string) ([]core.CategoryTotal, error)

	// Reload re-reads the underlying data after an ingestion run.
	Reload(ctx context.Context) error

	Close() error
}
