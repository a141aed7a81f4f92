package entity

import "time"

// Product representa un producto del inventario de eventos.
// CurrentStock es el stock libre (no reservado por ninguna asignación pendiente);
// solo lo modifican asignaciones, devoluciones y ajustes.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrentStock int       `json:"currentStock"`
	Unit         string    `json:"unit"`               // etiqueta libre: "pcs", "kg", "cajas"
	MinStock     *int      `json:"minStock,omitempty"` // umbral opcional de stock bajo
	InitialStock int       `json:"initialStock"`       // línea base al crear; no genera movimiento
	CreatedAt    time.Time `json:"createdAt"`
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
// Un umbral ausente o igual a 0 nunca marca stock bajo.
func (p *Product) IsLowStock() bool {
	return p.MinStock != nil && *p.MinStock > 0 && p.CurrentStock <= *p.MinStock
}
