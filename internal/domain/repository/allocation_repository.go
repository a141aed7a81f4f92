package repository

import "github.com/jhoicas/inventario-eventos/internal/domain/entity"

// AllocationRepository define el puerto de persistencia para EventAllocation.
type AllocationRepository interface {
	Create(allocation *entity.EventAllocation) error
	GetByID(id string) (*entity.EventAllocation, error)
	Update(allocation *entity.EventAllocation) error
	List() ([]*entity.EventAllocation, error)
	ListByEvent(eventID string) ([]*entity.EventAllocation, error)
}
