package inventory

import (
	"context"

	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no se persiste ningún cambio. Garantiza atomicidad para el motor de asignaciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		eventRepo repository.EventRepository,
		allocationRepo repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// Metrics registra el resultado de cada operación del motor ("ok" o el código de error).
type Metrics interface {
	ObserveOperation(operation, result string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, string) {}
