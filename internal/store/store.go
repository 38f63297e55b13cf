// Package store keeps persisted matches keyed by match id.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/peterkuimelis/mythduel/internal/game"
)

var ErrNotFound = errors.New("match not found")

// MatchStore is a key-value store of persisted matches.
type MatchStore interface {
	Get(ctx context.Context, id string) (game.Record, error)
	Put(ctx context.Context, rec game.Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// MemoryStore is an in-process MatchStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]game.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]game.Record{}}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (game.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return game.Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Put(ctx context.Context, rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// List returns every stored match id in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.records), nil
}

// cloneRecord copies the players payload so callers never share the buffer.
func cloneRecord(rec game.Record) game.Record {
	rec.Players = append([]byte(nil), rec.Players...)
	return rec
}

func sortedIDs(records map[string]game.Record) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
