// Package backend selects and constructs the ledger store the dashboard
// reads from.
package backend

import (
	"fmt"
	"log/slog"

	"budget/internal/ledger"
)

// Type represents the kind of ledger store.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what each store needs to open.
type Config struct {
	Type Type

	// File backend
	ArtifactPath string

	// SQLite backend
	SQLiteDBPath string
}

// Open builds the configured store. The caller owns Close.
func Open(cfg Config, logger *slog.Logger) (ledger.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		store, err := ledger.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite ledger store", "db_path", cfg.SQLiteDBPath)
		return store, nil
	default:
		store, err := ledger.NewFileStore(cfg.ArtifactPath)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file ledger store", "artifact", cfg.ArtifactPath)
		return store, nil
	}
}
