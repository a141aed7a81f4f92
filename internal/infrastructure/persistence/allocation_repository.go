package persistence

import (
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre el snapshot.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador.
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Create agrega una asignación. Genera el ID si viene vacío.
func (r *AllocationRepo) Create(allocation *entity.EventAllocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.New().String()
	}
	return r.q.write(KeyAllocations, func(s *Snapshot) error {
		if indexOf(s.Allocations, func(a *entity.EventAllocation) bool { return a.ID == allocation.ID }) >= 0 {
			return domain.ErrDuplicate
		}
		s.Allocations = append(s.Allocations, *allocation)
		return nil
	})
}

// GetByID obtiene una copia de la asignación; (nil, nil) si no existe.
func (r *AllocationRepo) GetByID(id string) (*entity.EventAllocation, error) {
	var out *entity.EventAllocation
	err := r.q.read(func(s *Snapshot) error {
		if i := indexOf(s.Allocations, func(a *entity.EventAllocation) bool { return a.ID == id }); i >= 0 {
			a := s.Allocations[i]
			out = &a
		}
		return nil
	})
	return out, err
}

// Update reemplaza la asignación con el mismo ID.
func (r *AllocationRepo) Update(allocation *entity.EventAllocation) error {
	return r.q.write(KeyAllocations, func(s *Snapshot) error {
		i := indexOf(s.Allocations, func(a *entity.EventAllocation) bool { return a.ID == allocation.ID })
		if i < 0 {
			return domain.ErrNotFound
		}
		s.Allocations[i] = *allocation
		return nil
	})
}

// List devuelve todas las asignaciones en orden de creación.
func (r *AllocationRepo) List() ([]*entity.EventAllocation, error) {
	return r.filter(func(*entity.EventAllocation) bool { return true })
}

// ListByEvent devuelve las asignaciones de un evento.
func (r *AllocationRepo) ListByEvent(eventID string) ([]*entity.EventAllocation, error) {
	return r.filter(func(a *entity.EventAllocation) bool { return a.EventID == eventID })
}

func (r *AllocationRepo) filter(match func(*entity.EventAllocation) bool) ([]*entity.EventAllocation, error) {
	var list []*entity.EventAllocation
	err := r.q.read(func(s *Snapshot) error {
		list = make([]*entity.EventAllocation, 0)
		for i := range s.Allocations {
			if match(&s.Allocations[i]) {
				a := s.Allocations[i]
				list = append(list, &a)
			}
		}
		return nil
	})
	return list, err
}
