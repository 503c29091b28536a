package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// FileStore keeps one JSON file per taxonomy under a data directory. Writes
// go through a temporary file and an atomic rename, so a crash leaves either
// the old file or the new one, never a torn one.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(kind taxonomy.Kind) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", kind))
}

// load and save take no lock themselves; callers hold s.mu.
func (s *FileStore) load(kind taxonomy.Kind) ([]json.RawMessage, error) {
	content, err := os.ReadFile(s.path(kind))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("corrupt taxonomy file %s: %w", s.path(kind), err)
	}
	return records, nil
}

func (s *FileStore) save(kind taxonomy.Kind, records []json.RawMessage) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tempPath := s.path(kind) + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, s.path(kind))
}

func (s *FileStore) List(_ context.Context, kind taxonomy.Kind) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(kind)
}

func (s *FileStore) Insert(_ context.Context, kind taxonomy.Kind, doc json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if DocID(doc) == "" {
		withID, err := WithID(doc, uuid.NewString())
		if err != nil {
			return nil, err
		}
		doc = withID
	}
	records, err := s.load(kind)
	if err != nil {
		return nil, err
	}
	records = append(records, doc)
	if err := s.save(kind, records); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) Update(_ context.Context, kind taxonomy.Kind, id string, doc json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(kind)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if DocID(records[i]) == id {
			records[i] = doc
			if err := s.save(kind, records); err != nil {
				return nil, err
			}
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Delete(_ context.Context, kind taxonomy.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(kind)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if DocID(rec) != id {
			kept = append(kept, rec)
		}
	}
	// Deleting an id that was never stored still succeeds; the gateway
	// promises idempotent deletes.
	return s.save(kind, kept)
}
