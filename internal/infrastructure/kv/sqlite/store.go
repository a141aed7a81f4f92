// Package sqlite implementa kv.Store sobre un archivo SQLite local (driver puro Go).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	_ "modernc.org/sqlite" // driver sqlite puro Go
)

var _ kv.Store = (*Store)(nil)

const defaultPath = "inventario.db"

// Store persiste cada clave como una fila de la tabla state(bucket, payload).
type Store struct {
	*kv.Broker
	db   *sql.DB
	path string
}

// NewStore abre (o crea) la base SQLite en path y asegura la tabla de estado.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("crear directorios: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo escritor: evita SQLITE_BUSY entre conexiones del pool.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla state: %w", err)
	}
	return &Store{Broker: kv.NewBroker(), db: db, path: path}, nil
}

// Get lee el payload de una clave.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", key, err)
	}
	return payload, true, nil
}

// SetMany hace upsert de todas las entradas en una transacción y notifica a los suscriptores.
func (s *Store) SetMany(ctx context.Context, entries []kv.Entry) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			e.Key, e.Payload,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.Publish(entries)
	return nil
}

// Close cierra la base de datos.
func (s *Store) Close() error { return s.db.Close() }

// Path devuelve la ruta configurada.
func (s *Store) Path() string { return s.path }
