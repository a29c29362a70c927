package memoryrelay

import (
	"context"
	"fmt"
	"sync"

	"github.com/okunev/nostrcal/internal/record"
	"github.com/okunev/nostrcal/internal/relay"
)

// Store is an in-memory relay record store, used in tests and for
// local development.
type Store struct {
	mu   sync.RWMutex
	data map[string]record.Raw
}

func New() *Store {
	return &Store{data: make(map[string]record.Raw)}
}

func (s *Store) Connect(_ context.Context) error {
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}

func (s *Store) Publish(_ context.Context, r record.Raw) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[r.ID]; ok {
		return fmt.Errorf("duplicate ID %q: %w", r.ID, relay.ErrDuplicateRecordID)
	}
	s.data[r.ID] = r
	return nil
}

func (s *Store) Fetch(_ context.Context, f relay.Filter) ([]record.Raw, error) {
	s.mu.RLock()
	records := make([]record.Raw, 0)
	for _, r := range s.data {
		if f.Match(r) {
			records = append(records, r)
		}
	}
	s.mu.RUnlock()

	relay.SortNewestFirst(records)
	if f.Limit > 0 && len(records) > f.Limit {
		records = records[:f.Limit]
	}
	return records, nil
}
