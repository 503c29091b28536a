package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// DemoStore is the no-persistence backend: reads serve an injected read-only
// snapshot and writes are acknowledged without being retained. It never
// returns an error, which is what lets the gateway promise that the admin UI
// always has data to render.
type DemoStore struct {
	snapshot map[taxonomy.Kind][]json.RawMessage
	now      func() time.Time
}

// NewDemoStore wraps a snapshot, typically taxonomy.DemoSnapshot().
func NewDemoStore(snapshot map[taxonomy.Kind][]json.RawMessage) *DemoStore {
	return &DemoStore{snapshot: snapshot, now: time.Now}
}

func (s *DemoStore) List(_ context.Context, kind taxonomy.Kind) ([]json.RawMessage, error) {
	records := s.snapshot[kind]
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

// Insert echoes the document back, assigning a "custom-<millis>" id when the
// caller did not supply one. Nothing is retained between requests.
func (s *DemoStore) Insert(_ context.Context, _ taxonomy.Kind, doc json.RawMessage) (json.RawMessage, error) {
	if DocID(doc) != "" {
		return doc, nil
	}
	return WithID(doc, taxonomy.NewDemoID(s.now()))
}

func (s *DemoStore) Update(_ context.Context, _ taxonomy.Kind, _ string, doc json.RawMessage) (json.RawMessage, error) {
	return doc, nil
}

func (s *DemoStore) Delete(_ context.Context, _ taxonomy.Kind, _ string) error {
	return nil
}
