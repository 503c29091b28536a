// Package store defines the persistence capability behind the resource
// gateway and its interchangeable backends. Records travel through this
// boundary as raw JSON documents so a backend never needs to know the
// taxonomy schemas.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

var (
	// ErrNotFound is returned when an update targets an id the backend does
	// not hold.
	ErrNotFound = errors.New("record not found")
)

// Store is the capability the gateway consumes. Insert and Update return the
// document as stored, so backends that assign identifiers report them back.
type Store interface {
	List(ctx context.Context, kind taxonomy.Kind) ([]json.RawMessage, error)
	Insert(ctx context.Context, kind taxonomy.Kind, doc json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, kind taxonomy.Kind, id string, doc json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, kind taxonomy.Kind, id string) error
}

// DocID extracts the "id" field from a record document, or "" if absent.
func DocID(doc json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return ""
	}
	return probe.ID
}

// WithID returns a copy of doc with its "id" field set.
func WithID(doc json.RawMessage, id string) (json.RawMessage, error) {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	fields["id"] = id
	return json.Marshal(fields)
}
