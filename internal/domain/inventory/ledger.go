package inventory

import "github.com/jhoicas/inventario-eventos/internal/domain/entity"

// LedgerBalance suma las cantidades firmadas de los movimientos de un producto.
func LedgerBalance(movements []*entity.MovementHistory, productID string) int {
	total := 0
	for _, m := range movements {
		if m.ProductID == productID {
			total += m.Quantity
		}
	}
	return total
}

// ExpectedStock deriva el stock de un producto desde el libro:
// StockEsperado = StockInicial + Σ(movimientos del producto).
func ExpectedStock(product *entity.Product, movements []*entity.MovementHistory) int {
	return product.InitialStock + LedgerBalance(movements, product.ID)
}

// OutstandingForProduct suma lo reservado y aún no devuelto en las asignaciones del producto.
func OutstandingForProduct(allocations []*entity.EventAllocation, productID string) int {
	total := 0
	for _, a := range allocations {
		if a.ProductID == productID {
			total += a.Outstanding()
		}
	}
	return total
}

// AdjustmentBalance suma solo los ajustes manuales del producto.
func AdjustmentBalance(movements []*entity.MovementHistory, productID string) int {
	total := 0
	for _, m := range movements {
		if m.ProductID == productID && m.Type == entity.MovementTypeAdjustment {
			total += m.Quantity
		}
	}
	return total
}

// IsConserved comprueba la conservación del stock de un producto:
// StockActual + Σ(pendiente de asignaciones) == StockInicial + Σ(ajustes).
func IsConserved(product *entity.Product, allocations []*entity.EventAllocation, movements []*entity.MovementHistory) bool {
	lhs := product.CurrentStock + OutstandingForProduct(allocations, product.ID)
	rhs := product.InitialStock + AdjustmentBalance(movements, product.ID)
	return lhs == rhs
}
