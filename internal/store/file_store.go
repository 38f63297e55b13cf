package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterkuimelis/mythduel/internal/game"
)

type fileState struct {
	Matches map[string]game.Record `json:"matches"`
}

// FileStore is a MatchStore persisted as a single JSON document in a data
// directory. Every mutation rewrites the file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	fs := &FileStore{
		path: filepath.Join(dataDir, "matches.json"),
		s:    fileState{Matches: map[string]game.Record{}},
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if loaded.Matches == nil {
		loaded.Matches = map[string]game.Record{}
	}
	s.s = loaded
	return nil
}

// saveLocked writes the state to a temp file and renames it into place.
func (s *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Get(ctx context.Context, id string) (game.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.s.Matches[id]
	if !ok {
		return game.Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *FileStore) Put(ctx context.Context, rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.s.Matches[rec.ID]
	s.s.Matches[rec.ID] = cloneRecord(rec)
	if err := s.saveLocked(); err != nil {
		if had {
			s.s.Matches[rec.ID] = prev
		} else {
			delete(s.s.Matches, rec.ID)
		}
		return fmt.Errorf("save match %s: %w", rec.ID, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.s.Matches[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.s.Matches, id)
	if err := s.saveLocked(); err != nil {
		s.s.Matches[id] = prev
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.s.Matches), nil
}
