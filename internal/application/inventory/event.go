package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// OpAddEvent etiqueta de métricas para el alta de eventos.
const OpAddEvent = "add_event"

// Formatos de fecha y hora aceptados en la entrada de eventos.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AddEvent crea un evento. Status por defecto "planned"; CreatedBy es el usuario con
// sesión o "" si no hay ninguno.
func (uc *AllocationUseCase) AddEvent(ctx context.Context, in dto.CreateEventRequest, creatorID string) (*entity.Event, error) {
	event, err := newEvent(in, creatorID, uc.now())
	if err != nil {
		return nil, uc.observe(OpAddEvent, err)
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		eventRepo repository.EventRepository,
		_ repository.AllocationRepository,
		_ repository.MovementRepository,
	) error {
		return eventRepo.Create(event)
	})
	if err != nil {
		return nil, uc.observe(OpAddEvent, err)
	}
	uc.observe(OpAddEvent, nil)
	return event, nil
}

func newEvent(in dto.CreateEventRequest, creatorID string, now time.Time) (*entity.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(in.Date), time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var at *string
	if in.Time != nil && strings.TrimSpace(*in.Time) != "" {
		t := strings.TrimSpace(*in.Time)
		if _, err := time.Parse(TimeLayout, t); err != nil {
			return nil, domain.ErrInvalidInput
		}
		at = &t
	}
	status := entity.EventStatus(in.Status)
	if status == "" {
		status = entity.EventStatusPlanned
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Event{
		ID:        uuid.New().String(),
		Name:      name,
		Date:      date,
		Time:      at,
		Status:    status,
		CreatedAt: now,
		CreatedBy: creatorID,
	}, nil
}
