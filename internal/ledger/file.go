package ledger

import (
	"context"
	"sync"

	"budget/internal/core"
)

// FileStore serves queries straight from the JSON artifact, held in memory.
// Queries are pure functions over the loaded slice; the mutex only guards
// Reload swapping the slice.
type FileStore struct {
	path string

	mu  sync.RWMutex
	txs []core.Transaction
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Reload(_ context.Context) error {
	txs, err := ReadArtifact(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.txs = txs
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Transactions(_ context.Context, prefix string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.FilterPeriod(s.txs, prefix), nil
}

func (s *FileStore) CategoryTotals(_ context.Context, prefix string) ([]core.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.TotalsByCategory(s.txs, prefix), nil
}

func (s *FileStore) Close() error { return nil }
