package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-eventos/pkg/logger"
)

// Querier da acceso al estado a los repositorios. Lo implementan Database
// (cada escritura es su propia transacción) y las transacciones de TxRunner.
type Querier interface {
	read(fn func(s *Snapshot) error) error
	write(key string, fn func(s *Snapshot) error) error
}

var _ Querier = (*Database)(nil)

// Database mantiene el último snapshot confirmado y serializa las escrituras contra el Store.
// El estado se carga del almacén en el primer acceso.
type Database struct {
	store kv.Store
	log   *logger.Logger

	writeMu sync.Mutex // un único escritor
	stateMu sync.RWMutex
	state   *Snapshot
}

// NewDatabase construye la base sobre el almacén indicado. log puede ser nil.
func NewDatabase(store kv.Store, log *logger.Logger) *Database {
	return &Database{store: store, log: log}
}

// Subscribe delega en el almacén: fn recibe cada colección confirmada.
// fn no debe escribir en la base (se invoca mientras se confirma la escritura).
func (d *Database) Subscribe(key string, fn kv.Listener) func() {
	return d.store.Subscribe(key, fn)
}

// Snapshot devuelve el último estado confirmado (solo lectura).
func (d *Database) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := d.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state, nil
}

// Commit ejecuta fn sobre una copia del estado. Si fn devuelve error no se escribe nada;
// si no, las colecciones tocadas se guardan con un único SetMany y la copia pasa a ser el estado.
func (d *Database) Commit(ctx context.Context, fn func(s *Snapshot) error) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if err := d.loadLocked(ctx); err != nil {
		return err
	}

	d.stateMu.RLock()
	work := d.state.clone()
	d.stateMu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	entries, err := work.dirtyEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if err := d.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("persistir estado: %w", err)
	}
	work.dirty = nil

	d.stateMu.Lock()
	d.state = work
	d.stateMu.Unlock()

	if d.log != nil {
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		d.log.Debug().Strs("keys", keys).Msg("estado confirmado")
	}
	return nil
}

func (d *Database) read(fn func(s *Snapshot) error) error {
	s, err := d.Snapshot(context.Background())
	if err != nil {
		return err
	}
	return fn(s)
}

func (d *Database) write(key string, fn func(s *Snapshot) error) error {
	return d.Commit(context.Background(), func(s *Snapshot) error {
		s.touch(key)
		return fn(s)
	})
}

func (d *Database) ensureLoaded(ctx context.Context) error {
	d.stateMu.RLock()
	loaded := d.state != nil
	d.stateMu.RUnlock()
	if loaded {
		return nil
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.loadLocked(ctx)
}

// loadLocked requiere writeMu. Un fallo deja el estado sin cargar para reintentar.
func (d *Database) loadLocked(ctx context.Context) error {
	d.stateMu.RLock()
	loaded := d.state != nil
	d.stateMu.RUnlock()
	if loaded {
		return nil
	}
	snap := &Snapshot{}
	for _, key := range Keys {
		payload, ok, err := d.store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("cargar %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := snap.decode(key, payload); err != nil {
			return fmt.Errorf("decodificar %s: %w", key, err)
		}
	}
	d.stateMu.Lock()
	d.state = snap
	d.stateMu.Unlock()
	if d.log != nil {
		d.log.Debug().
			Int("products", len(snap.Products)).
			Int("events", len(snap.Events)).
			Int("allocations", len(snap.Allocations)).
			Int("movements", len(snap.Movements)).
			Int("users", len(snap.Users)).
			Msg("estado cargado del almacén")
	}
	return nil
}

// txQuerier atado a la copia de trabajo de una transacción.
type txQuerier struct {
	s *Snapshot
}

func (q *txQuerier) read(fn func(s *Snapshot) error) error { return fn(q.s) }

func (q *txQuerier) write(key string, fn func(s *Snapshot) error) error {
	q.s.touch(key)
	return fn(q.s)
}
