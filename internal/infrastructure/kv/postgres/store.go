// Package postgres implementa kv.Store sobre una tabla JSONB en PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
)

var _ kv.Store = (*Store)(nil)

// Store persiste cada clave como una fila de state(bucket, payload JSONB).
type Store struct {
	*kv.Broker
	pool *pgxpool.Pool
}

// NewStore asegura la tabla de estado y construye el almacén sobre el pool.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket     TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("crear tabla state: %w", err)
	}
	return &Store{Broker: kv.NewBroker(), pool: pool}, nil
}

// Get lee el documento JSON de una clave.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM state WHERE bucket = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", key, err)
	}
	return payload, true, nil
}

// SetMany hace upsert de todas las entradas dentro de una transacción (Commit o Rollback).
func (s *Store) SetMany(ctx context.Context, entries []kv.Entry) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, e := range entries {
			if _, err := tx.Exec(ctx,
				`INSERT INTO state (bucket, payload, updated_at) VALUES ($1, $2, now())
				 ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
				e.Key, e.Payload,
			); err != nil {
				return fmt.Errorf("upsert %s: %w", e.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Publish(entries)
	return nil
}

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
