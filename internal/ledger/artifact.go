// Package ledger owns the materialized transaction artifact and the stores
// that serve it to the dashboard.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"budget/internal/core"
)

// WriteArtifact serializes the full normalized sequence to path as an
// indented JSON array. The write is atomic (temp file + rename) so a
// concurrent reader never observes a partial ledger; re-running ingestion
// fully replaces the artifact.
func WriteArtifact(path string, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".transactions-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads the normalized sequence back from path, preserving
// order.
func ReadArtifact(path string) ([]core.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var txs []core.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return txs, nil
}
