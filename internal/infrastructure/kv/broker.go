package kv

import "sync"

// Broker reparte notificaciones de cambios a los suscriptores de cada clave.
// Los backends lo embeben y llaman a Publish después de un commit exitoso.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Listener
}

// NewBroker construye un broker vacío.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[int]Listener)}
}

// Subscribe registra fn para la clave indicada y devuelve la función para darse de baja.
// La clave "*" recibe todos los cambios.
func (b *Broker) Subscribe(key string, fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[string]map[int]Listener)
	}
	id := b.nextID
	b.nextID++
	if b.subs[key] == nil {
		b.subs[key] = make(map[int]Listener)
	}
	b.subs[key][id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[key], id)
		})
	}
}

// Publish notifica cada entrada a sus suscriptores y a los comodín.
// Los listeners se invocan fuera del lock.
func (b *Broker) Publish(entries []Entry) {
	for _, e := range entries {
		for _, fn := range b.listeners(e.Key) {
			fn(e.Key, e.Payload)
		}
	}
}

func (b *Broker) listeners(key string) []Listener {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Listener, 0, len(b.subs[key])+len(b.subs["*"]))
	for _, fn := range b.subs[key] {
		out = append(out, fn)
	}
	for _, fn := range b.subs["*"] {
		out = append(out, fn)
	}
	return out
}
