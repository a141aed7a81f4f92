package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeAllocation MovementType = "allocation" // salida hacia un evento
	MovementTypeReturn     MovementType = "return"     // devolución desde un evento
	MovementTypeAdjustment MovementType = "adjustment" // ajuste manual
)

// MovementHistory entrada inmutable del libro de movimientos.
// Quantity es negativa en salidas (asignación) y positiva en entradas (devolución).
type MovementHistory struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	EventID   *string      `json:"eventId,omitempty"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Date      time.Time    `json:"date"`
	UserID    string       `json:"userId"`
	Notes     *string      `json:"notes,omitempty"`
}
