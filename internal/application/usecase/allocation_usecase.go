package usecase

import (
	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// AllocationUseCase listados de asignaciones con nombres de evento, producto y creador.
type AllocationUseCase struct {
	repo        repository.AllocationRepository
	eventRepo   repository.EventRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewAllocationUseCase construye el caso de uso.
func NewAllocationUseCase(
	repo repository.AllocationRepository,
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *AllocationUseCase {
	return &AllocationUseCase{repo: repo, eventRepo: eventRepo, productRepo: productRepo, userRepo: userRepo}
}

// List devuelve todas las asignaciones en orden de alta.
func (uc *AllocationUseCase) List() (*dto.AllocationListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	events, err := uc.eventRepo.List()
	if err != nil {
		return nil, err
	}
	return resolveAllocations(list, events, uc.productRepo, uc.userRepo)
}

// Describe resuelve los nombres de una asignación recién creada o modificada.
func (uc *AllocationUseCase) Describe(a *entity.EventAllocation) (*dto.AllocationResponse, error) {
	events, err := uc.eventRepo.List()
	if err != nil {
		return nil, err
	}
	out, err := resolveAllocations([]*entity.EventAllocation{a}, events, uc.productRepo, uc.userRepo)
	if err != nil {
		return nil, err
	}
	return &out.Items[0], nil
}

// El creador se toma de CreatedBy; no se busca en el libro de movimientos.
func resolveAllocations(
	list []*entity.EventAllocation,
	events []*entity.Event,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) (*dto.AllocationListResponse, error) {
	products, err := productRepo.List()
	if err != nil {
		return nil, err
	}
	users, err := userRepo.List()
	if err != nil {
		return nil, err
	}
	eventsByID := indexByID(events, func(e *entity.Event) string { return e.ID })
	productsByID := indexByID(products, func(p *entity.Product) string { return p.ID })
	usersByID := indexByID(users, func(u *entity.User) string { return u.ID })

	items := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAllocationResponse(a, eventsByID, productsByID, usersByID))
	}
	return &dto.AllocationListResponse{Items: items, Total: len(items)}, nil
}
