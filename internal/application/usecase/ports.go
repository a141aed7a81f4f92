package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
)

// AllocationSheet datos de la hoja de asignaciones de un evento.
type AllocationSheet struct {
	Event       dto.EventResponse
	Lines       []dto.AllocationResponse
	GeneratedAt time.Time
	GeneratedBy string // nombre del usuario que la pidió; puede ir vacío
}

// Totals suma asignado, devuelto y pendiente de todas las líneas.
func (s AllocationSheet) Totals() (allocated, returned, outstanding int) {
	for _, l := range s.Lines {
		allocated += l.AllocatedQuantity
		returned += l.ReturnedQuantity
		outstanding += l.Outstanding
	}
	return allocated, returned, outstanding
}

// AllocationSheetGenerator puerto de salida: renderiza la hoja (PDF) y devuelve sus bytes.
type AllocationSheetGenerator interface {
	GenerateAllocationSheet(ctx context.Context, sheet AllocationSheet) ([]byte, error)
}
