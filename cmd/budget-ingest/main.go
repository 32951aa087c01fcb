package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/ingest"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// budget-ingest is the one-shot build step: it parses every configured
// statement export, normalizes the rows and replaces the materialized
// ledger. It either fully succeeds or leaves the previous ledger untouched.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	budget, err := config.LoadBudget(cfg.BudgetPath)
	if err != nil {
		logger.Error("Failed to load budget config", "error", err, "path", cfg.BudgetPath)
		os.Exit(1)
	}

	ctx := context.Background()
	runner := ingest.NewRunner(budget.Accounts, applog.New("ingest", nil))
	txs, err := runner.Run(ctx)
	if err != nil {
		logger.Error("Ingestion run failed, ledger unchanged", "error", err)
		os.Exit(1)
	}

	if err := ledger.WriteArtifact(cfg.ArtifactPath, txs); err != nil {
		logger.Error("Failed to write artifact", "error", err, "path", cfg.ArtifactPath)
		os.Exit(1)
	}
	logger.Info("Artifact written", "path", cfg.ArtifactPath, "transactions", len(txs))

	// Mirror the ledger into SQLite when that's the dashboard's backend.
	if cfg.LedgerBackend == "sqlite" {
		store, err := ledger.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.ReplaceAll(ctx, txs); err != nil {
			logger.Error("Failed to load ledger into SQLite", "error", err)
			os.Exit(1)
		}
	}

	// Tell running dashboards to drop their caches (optional).
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, skipping refresh notification", "error", err)
			return
		}
		defer client.Close()
		if err := client.PublishLedgerRefreshed(ctx, len(txs)); err != nil {
			logger.Warn("Failed to publish refresh notification", "error", err)
		}
	}
}
