package dto

import "time"

// AllocateRequest body para POST /api/allocations.
type AllocateRequest struct {
	EventID   string `json:"event_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// ReturnRequest body para POST /api/allocations/:id/returns.
type ReturnRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// AdjustStockRequest body para POST /api/products/:id/adjustments.
// Delta positivo suma al stock, negativo resta.
type AdjustStockRequest struct {
	Delta int     `json:"delta" validate:"required,ne=0"`
	Notes *string `json:"notes,omitempty"`
}

// AllocationResponse salida de una asignación con nombres resueltos.
type AllocationResponse struct {
	ID                string    `json:"id"`
	EventID           string    `json:"event_id"`
	EventName         string    `json:"event_name,omitempty"`
	ProductID         string    `json:"product_id"`
	ProductName       string    `json:"product_name,omitempty"`
	Unit              string    `json:"unit,omitempty"`
	AllocatedQuantity int       `json:"allocated_quantity"`
	ReturnedQuantity  int       `json:"returned_quantity"`
	Outstanding       int       `json:"outstanding"`
	CanReturn         bool      `json:"can_return"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	CreatorName       string    `json:"creator_name,omitempty"`
}

// AllocationListResponse lista de asignaciones.
type AllocationListResponse struct {
	Items []AllocationResponse `json:"items"`
	Total int                  `json:"total"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	EventID   *string   `json:"event_id,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
	Notes     *string   `json:"notes,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockDiscrepancyDTO producto cuyo stock cacheado no coincide con el libro.
type StockDiscrepancyDTO struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	CurrentStock  int    `json:"current_stock"`
	ExpectedStock int    `json:"expected_stock"` // StockInicial + Σ movimientos
	Outstanding   int    `json:"outstanding"`
}

// ReconciliationResponse resultado de la conciliación stock vs libro.
type ReconciliationResponse struct {
	CheckedProducts int                   `json:"checked_products"`
	Consistent      bool                  `json:"consistent"`
	Discrepancies   []StockDiscrepancyDTO `json:"discrepancies"`
}
