// Package ingest turns raw per-account statement exports into the single
// normalized transaction sequence the rest of the system reads.
package ingest

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"budget/internal/core"
	applog "budget/internal/log"
)

// Runner runs the one-shot ingestion batch: every configured file of every
// configured account, parsed concurrently, concatenated deterministically.
type Runner struct {
	accounts []core.Account
	logger   *applog.Logger
}

func NewRunner(accounts []core.Account, logger *applog.Logger) *Runner {
	if logger == nil {
		logger = applog.New("ingest", nil)
	}
	return &Runner{accounts: accounts, logger: logger}
}

type job struct {
	account core.Account
	path    string
}

// Run parses all source files and returns the normalized sequence. Files are
// parsed in parallel, but results land in pre-assigned slots so the output
// order is always account declaration order, then file declaration order,
// then row order, regardless of completion order.
//
// Any failure (missing file, malformed amount) aborts the whole run: a
// partial ledger would silently understate totals.
func (r *Runner) Run(ctx context.Context) ([]core.Transaction, error) {
	var jobs []job
	for _, account := range r.accounts {
		for _, path := range account.Files {
			jobs = append(jobs, job{account: account, path: path})
		}
	}

	results := make([][]core.Transaction, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			content, err := os.ReadFile(j.path)
			if err != nil {
				return fmt.Errorf("account %q: read %s: %w", j.account.Name, j.path, err)
			}
			txs, err := ParseStatement(string(content), j.account)
			if err != nil {
				return fmt.Errorf("account %q: parse %s: %w", j.account.Name, j.path, err)
			}
			r.logger.InfoContext(ctx, "Parsed statement file",
				"account", j.account.Name,
				"file", j.path,
				"rows", len(txs))
			results[i] = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []core.Transaction
	for _, txs := range results {
		all = append(all, txs...)
	}
	r.logger.InfoContext(ctx, "Ingestion run complete",
		"accounts", len(r.accounts),
		"files", len(jobs),
		"transactions", len(all))
	return all, nil
}
