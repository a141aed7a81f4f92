package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
)

// Claves lógicas del almacén, una por colección.
const (
	KeyProducts      = "products"
	KeyEvents        = "events"
	KeyAllocations   = "allocations"
	KeyMovements     = "movements"
	KeyUsers         = "users"
	KeyCurrentUserID = "currentUserId"
)

// Keys lista ordenada de claves persistidas.
var Keys = []string{KeyProducts, KeyEvents, KeyAllocations, KeyMovements, KeyUsers, KeyCurrentUserID}

// Snapshot reflejo en memoria de todas las colecciones guardadas.
// Un snapshot confirmado no se modifica nunca: las transacciones trabajan sobre un clone.
type Snapshot struct {
	Products      []entity.Product
	Events        []entity.Event
	Allocations   []entity.EventAllocation
	Movements     []entity.MovementHistory
	Users         []entity.User
	CurrentUserID *string

	dirty map[string]bool
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		Products:      append([]entity.Product(nil), s.Products...),
		Events:        append([]entity.Event(nil), s.Events...),
		Allocations:   append([]entity.EventAllocation(nil), s.Allocations...),
		Movements:     append([]entity.MovementHistory(nil), s.Movements...),
		Users:         append([]entity.User(nil), s.Users...),
		CurrentUserID: s.CurrentUserID,
	}
}

// touch marca una colección como modificada para incluirla en el commit.
func (s *Snapshot) touch(key string) {
	if s.dirty == nil {
		s.dirty = make(map[string]bool)
	}
	s.dirty[key] = true
}

// dirtyEntries serializa solo las colecciones modificadas, en el orden de Keys.
func (s *Snapshot) dirtyEntries() ([]kv.Entry, error) {
	entries := make([]kv.Entry, 0, len(s.dirty))
	for _, key := range Keys {
		if !s.dirty[key] {
			continue
		}
		payload, err := s.encode(key)
		if err != nil {
			return nil, fmt.Errorf("codificar %s: %w", key, err)
		}
		entries = append(entries, kv.Entry{Key: key, Payload: payload})
	}
	return entries, nil
}

func (s *Snapshot) encode(key string) ([]byte, error) {
	switch key {
	case KeyProducts:
		return json.Marshal(nonNil(s.Products))
	case KeyEvents:
		return json.Marshal(nonNil(s.Events))
	case KeyAllocations:
		return json.Marshal(nonNil(s.Allocations))
	case KeyMovements:
		return json.Marshal(nonNil(s.Movements))
	case KeyUsers:
		return json.Marshal(nonNil(s.Users))
	case KeyCurrentUserID:
		return json.Marshal(s.CurrentUserID)
	}
	return nil, fmt.Errorf("clave desconocida %q", key)
}

func (s *Snapshot) decode(key string, payload []byte) error {
	switch key {
	case KeyProducts:
		return json.Unmarshal(payload, &s.Products)
	case KeyEvents:
		return json.Unmarshal(payload, &s.Events)
	case KeyAllocations:
		return json.Unmarshal(payload, &s.Allocations)
	case KeyMovements:
		return json.Unmarshal(payload, &s.Movements)
	case KeyUsers:
		return json.Unmarshal(payload, &s.Users)
	case KeyCurrentUserID:
		return json.Unmarshal(payload, &s.CurrentUserID)
	}
	return fmt.Errorf("clave desconocida %q", key)
}

// nonNil evita persistir null para colecciones vacías.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
