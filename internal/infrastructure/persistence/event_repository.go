package persistence

import (
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación de EventRepository sobre el snapshot.
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador.
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

// Create agrega un evento. Genera el ID si viene vacío.
func (r *EventRepo) Create(event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	return r.q.write(KeyEvents, func(s *Snapshot) error {
		if indexOf(s.Events, func(e *entity.Event) bool { return e.ID == event.ID }) >= 0 {
			return domain.ErrDuplicate
		}
		s.Events = append(s.Events, *event)
		return nil
	})
}

// GetByID obtiene una copia del evento; (nil, nil) si no existe.
func (r *EventRepo) GetByID(id string) (*entity.Event, error) {
	var out *entity.Event
	err := r.q.read(func(s *Snapshot) error {
		if i := indexOf(s.Events, func(e *entity.Event) bool { return e.ID == id }); i >= 0 {
			e := s.Events[i]
			out = &e
		}
		return nil
	})
	return out, err
}

// Update reemplaza el evento con el mismo ID.
func (r *EventRepo) Update(event *entity.Event) error {
	return r.q.write(KeyEvents, func(s *Snapshot) error {
		i := indexOf(s.Events, func(e *entity.Event) bool { return e.ID == event.ID })
		if i < 0 {
			return domain.ErrNotFound
		}
		s.Events[i] = *event
		return nil
	})
}

// List devuelve los eventos en orden de inserción.
func (r *EventRepo) List() ([]*entity.Event, error) {
	var list []*entity.Event
	err := r.q.read(func(s *Snapshot) error {
		list = make([]*entity.Event, 0, len(s.Events))
		for i := range s.Events {
			e := s.Events[i]
			list = append(list, &e)
		}
		return nil
	})
	return list, err
}
