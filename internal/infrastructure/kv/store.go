// Package kv define el almacén clave-valor que actúa como fuente única de verdad:
// cada colección (products, events, allocations, movements, users, currentUserId)
// se guarda como un documento JSON bajo su nombre lógico.
package kv

import "context"

// Entry par clave/valor para escrituras en lote.
type Entry struct {
	Key     string
	Payload []byte
}

// Listener recibe la clave modificada y su nuevo contenido tras un commit.
type Listener func(key string, payload []byte)

// Store puerto del almacén persistente.
// SetMany es atómico: se escriben todas las entradas o ninguna.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetMany(ctx context.Context, entries []Entry) error
	Subscribe(key string, fn Listener) (unsubscribe func())
	Close() error
}
