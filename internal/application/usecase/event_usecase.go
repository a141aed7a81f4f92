package usecase

import (
	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// EventUseCase consultas de eventos y cambios de estado. El alta pasa por el motor.
type EventUseCase struct {
	repo           repository.EventRepository
	allocationRepo repository.AllocationRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(
	repo repository.EventRepository,
	allocationRepo repository.AllocationRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *EventUseCase {
	return &EventUseCase{repo: repo, allocationRepo: allocationRepo, productRepo: productRepo, userRepo: userRepo}
}

// GetByID obtiene un evento con el nombre de su creador; (nil, nil) si no existe.
func (uc *EventUseCase) GetByID(id string) (*dto.EventResponse, error) {
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	return ToEventResponse(event, uc.creatorName(event.CreatedBy)), nil
}

// List lista los eventos en orden de alta.
func (uc *EventUseCase) List() (*dto.EventListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	byID := indexByID(users, func(u *entity.User) string { return u.ID })
	items := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		name := ""
		if u, ok := byID[e.CreatedBy]; ok {
			name = u.Name
		}
		items = append(items, *ToEventResponse(e, name))
	}
	return &dto.EventListResponse{Items: items, Total: len(items)}, nil
}

// UpdateStatus aplica la máquina de estados: planned → in-progress → completed,
// cancelled desde planned o in-progress. Repetir el estado actual no es un error.
func (uc *EventUseCase) UpdateStatus(id string, in dto.UpdateEventStatusRequest) (*dto.EventResponse, error) {
	next := entity.EventStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.Status != next {
		if !event.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		event.Status = next
		if err := uc.repo.Update(event); err != nil {
			return nil, err
		}
	}
	return ToEventResponse(event, uc.creatorName(event.CreatedBy)), nil
}

// Allocations lista las asignaciones de un evento con nombres resueltos.
func (uc *EventUseCase) Allocations(eventID string) (*dto.AllocationListResponse, error) {
	event, err := uc.repo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.allocationRepo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return resolveAllocations(list, []*entity.Event{event}, uc.productRepo, uc.userRepo)
}

func (uc *EventUseCase) creatorName(userID string) string {
	if userID == "" {
		return ""
	}
	u, err := uc.userRepo.GetByID(userID)
	if err != nil || u == nil {
		return ""
	}
	return u.Name
}
