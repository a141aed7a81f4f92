package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// SheetUseCase genera la hoja de asignaciones (PDF) de un evento.
type SheetUseCase struct {
	events    *EventUseCase
	userRepo  repository.UserRepository
	generator AllocationSheetGenerator
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(events *EventUseCase, userRepo repository.UserRepository, generator AllocationSheetGenerator) *SheetUseCase {
	return &SheetUseCase{events: events, userRepo: userRepo, generator: generator}
}

// Download arma la hoja del evento y la renderiza.
// Retorna domain.ErrNotFound si el evento no existe.
func (uc *SheetUseCase) Download(ctx context.Context, eventID, requestedBy string) (pdfBytes []byte, filename string, err error) {
	event, err := uc.events.GetByID(eventID)
	if err != nil {
		return nil, "", fmt.Errorf("hoja: obtener evento: %w", err)
	}
	if event == nil {
		return nil, "", domain.ErrNotFound
	}
	allocations, err := uc.events.Allocations(eventID)
	if err != nil {
		return nil, "", err
	}
	sheet := AllocationSheet{
		Event:       *event,
		Lines:       allocations.Items,
		GeneratedAt: time.Now(),
	}
	if requestedBy != "" {
		if u, err := uc.userRepo.GetByID(requestedBy); err == nil && u != nil {
			sheet.GeneratedBy = u.Name
		}
	}
	pdfBytes, err = uc.generator.GenerateAllocationSheet(ctx, sheet)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, sheetFilename(event.Name, event.Date), nil
}

func sheetFilename(name, date string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, foldText(name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "evento"
	}
	return fmt.Sprintf("asignaciones-%s-%s.pdf", slug, date)
}
