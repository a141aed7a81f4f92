package dto

import "github.com/shopspring/decimal"

// ProductRotationDTO cantidad de movimientos de un producto.
type ProductRotationDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Movements int    `json:"movements"`
}

// LowStockProductDTO producto en o por debajo de su stock mínimo.
type LowStockProductDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Unit         string `json:"unit"`
}

// StatisticsDTO resumen del panel, recalculado en cada consulta.
type StatisticsDTO struct {
	AverageProductsPerCompletedEvent decimal.Decimal      `json:"average_products_per_completed_event"`
	TopProducts                      []ProductRotationDTO `json:"top_products"`
	MostUsedProduct                  *ProductRotationDTO  `json:"most_used_product,omitempty"`
	ScheduledUpcomingEvents          int                  `json:"scheduled_upcoming_events"`
	TotalMovements                   int                  `json:"total_movements"`
	TotalProducts                    int                  `json:"total_products"`
	LowStockProducts                 []LowStockProductDTO `json:"low_stock_products"`
	ActiveEvents                     int                  `json:"active_events"`
	TotalAllocations                 int                  `json:"total_allocations"`
}
