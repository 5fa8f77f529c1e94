package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	db     *pgxpool.Pool
	prefix string
}

func NewPGStore(db *pgxpool.Pool, prefix string) *PGStore {
	return &PGStore{db: db, prefix: prefix}
}

// EnsureSchema creates the kv_store table when it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS kv_store (
            key        TEXT PRIMARY KEY,
            value      TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	return err
}

func (s *PGStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, s.prefix+key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *PGStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, s.prefix+key, value)
	return err
}

func (s *PGStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key=$1`, s.prefix+key)
	return err
}

var _ KeyValue = (*PGStore)(nil)
