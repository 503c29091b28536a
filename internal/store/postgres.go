package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

const resourcesSchema = `
CREATE TABLE IF NOT EXISTS resources (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	doc  JSONB NOT NULL,
	PRIMARY KEY (kind, id)
)`

// PostgresStore persists records as jsonb documents keyed by (kind, id).
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if _, err := pool.Exec(ctx, resourcesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure resources table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) List(ctx context.Context, kind taxonomy.Kind) ([]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM resources WHERE kind = $1 ORDER BY doc->>'created_at', id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", kind, err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, kind taxonomy.Kind, doc json.RawMessage) (json.RawMessage, error) {
	id := DocID(doc)
	if id == "" {
		id = uuid.NewString()
		withID, err := WithID(doc, id)
		if err != nil {
			return nil, err
		}
		doc = withID
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO resources (kind, id, doc) VALUES ($1, $2, $3)`, string(kind), id, doc); err != nil {
		return nil, fmt.Errorf("insert %s/%s: %w", kind, id, err)
	}
	return doc, nil
}

func (s *PostgresStore) Update(ctx context.Context, kind taxonomy.Kind, id string, doc json.RawMessage) (json.RawMessage, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE resources SET doc = $3 WHERE kind = $1 AND id = $2`, string(kind), id, doc)
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, kind taxonomy.Kind, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM resources WHERE kind = $1 AND id = $2`, string(kind), id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}
