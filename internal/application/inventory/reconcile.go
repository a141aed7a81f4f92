package inventory

import (
	"context"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	ledger "github.com/jhoicas/inventario-eventos/internal/domain/inventory"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// Reconcile recalcula el stock de cada producto desde el libro de movimientos
// (StockInicial + Σ movimientos) y lo compara con el CurrentStock cacheado.
// Solo lee: la transacción no toca ninguna colección y no se confirma nada.
func (uc *AllocationUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error) {
	out := &dto.ReconciliationResponse{Discrepancies: []dto.StockDiscrepancyDTO{}}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.EventRepository,
		allocationRepo repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error {
		products, err := productRepo.List()
		if err != nil {
			return err
		}
		allocations, err := allocationRepo.List()
		if err != nil {
			return err
		}
		movements, err := movementRepo.List()
		if err != nil {
			return err
		}
		out.CheckedProducts = len(products)
		for _, p := range products {
			expected := ledger.ExpectedStock(p, movements)
			if expected == p.CurrentStock && ledger.IsConserved(p, allocations, movements) {
				continue
			}
			out.Discrepancies = append(out.Discrepancies, dto.StockDiscrepancyDTO{
				ProductID:     p.ID,
				ProductName:   p.Name,
				CurrentStock:  p.CurrentStock,
				ExpectedStock: expected,
				Outstanding:   ledger.OutstandingForProduct(allocations, p.ID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Consistent = len(out.Discrepancies) == 0
	return out, nil
}
