package kv

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore almacén en memoria del proceso (tests y STORE_DRIVER=memory).
type MemoryStore struct {
	*Broker
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Broker: NewBroker(), data: make(map[string][]byte)}
}

// Get devuelve una copia del valor guardado bajo key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// SetMany escribe todas las entradas bajo un único lock y luego notifica.
func (s *MemoryStore) SetMany(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	for _, e := range entries {
		s.data[e.Key] = append([]byte(nil), e.Payload...)
	}
	s.mu.Unlock()
	s.Publish(entries)
	return nil
}

// Close no hace nada; existe para cumplir Store.
func (s *MemoryStore) Close() error { return nil }
