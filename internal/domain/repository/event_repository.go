package repository

import "github.com/jhoicas/inventario-eventos/internal/domain/entity"

// EventRepository define el puerto de persistencia para Event.
type EventRepository interface {
	Create(event *entity.Event) error
	GetByID(id string) (*entity.Event, error)
	Update(event *entity.Event) error
	List() ([]*entity.Event, error)
}
