package entity

import "time"

// EventAllocation reserva una cantidad de un producto para un evento.
// Invariante: 0 <= ReturnedQuantity <= AllocatedQuantity.
type EventAllocation struct {
	ID                string    `json:"id"`
	EventID           string    `json:"eventId"`
	ProductID         string    `json:"productId"`
	AllocatedQuantity int       `json:"allocatedQuantity"` // fija desde la creación
	ReturnedQuantity  int       `json:"returnedQuantity"`  // acumulada por devoluciones parciales
	CreatedAt         time.Time `json:"createdAt"`
	CreatedBy         string    `json:"createdBy"`
}

// Outstanding devuelve la cantidad aún reservada (asignada menos devuelta).
func (a *EventAllocation) Outstanding() int {
	return a.AllocatedQuantity - a.ReturnedQuantity
}

// IsExhausted indica si ya se devolvió todo lo asignado.
func (a *EventAllocation) IsExhausted() bool {
	return a.Outstanding() == 0
}
