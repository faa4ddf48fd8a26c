// Package memory provides an in-memory Store for single-process use.
package memory

import (
	"context"
	"sync"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

// Store implements store.Store with in-memory storage.
// Useful for tests and clients that do not need persistence.
type Store struct {
	mu      sync.RWMutex
	records map[string]*store.Record
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*store.Record),
	}
}

func (s *Store) Start(ctx context.Context) error {
	return nil
}

func (s *Store) Stop() error {
	return nil
}

func (s *Store) Put(ctx context.Context, rec *store.Record) error {
	if rec == nil || rec.ClientID == "" {
		return store.ErrInvalidClientID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ClientID] = rec.Clone()
	return nil
}

func (s *Store) Get(ctx context.Context, clientID string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[clientID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *Store) Delete(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, clientID)
	return nil
}

func (s *Store) Clients(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}

// Verify interface implementation
var _ store.Store = (*Store)(nil)
