package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/inventory"
)

func movement(productID string, kind entity.MovementType, qty int) *entity.MovementHistory {
	return &entity.MovementHistory{ProductID: productID, Type: kind, Quantity: qty}
}

func TestLedger_StockEsperadoDesdeMovimientos(t *testing.T) {
	p := &entity.Product{ID: "p1", InitialStock: 10, CurrentStock: 7}
	movs := []*entity.MovementHistory{
		movement("p1", entity.MovementTypeAllocation, -5),
		movement("p1", entity.MovementTypeReturn, 2),
		movement("p2", entity.MovementTypeAllocation, -9),
	}
	assert.Equal(t, -3, inventory.LedgerBalance(movs, "p1"))
	assert.Equal(t, 7, inventory.ExpectedStock(p, movs))
}

func TestLedger_ConservacionConAsignacionesPendientes(t *testing.T) {
	// Inicial 10, ajuste +4, asignado 6 con 1 devuelto: stock libre 9, pendiente 5.
	p := &entity.Product{ID: "p1", InitialStock: 10, CurrentStock: 9}
	allocs := []*entity.EventAllocation{
		{ProductID: "p1", AllocatedQuantity: 6, ReturnedQuantity: 1},
		{ProductID: "p2", AllocatedQuantity: 3},
	}
	movs := []*entity.MovementHistory{
		movement("p1", entity.MovementTypeAdjustment, 4),
		movement("p1", entity.MovementTypeAllocation, -6),
		movement("p1", entity.MovementTypeReturn, 1),
	}
	assert.Equal(t, 5, inventory.OutstandingForProduct(allocs, "p1"))
	assert.Equal(t, 4, inventory.AdjustmentBalance(movs, "p1"))
	assert.True(t, inventory.IsConserved(p, allocs, movs))

	p.CurrentStock = 8
	assert.False(t, inventory.IsConserved(p, allocs, movs), "un stock alterado rompe la conservación")
}
