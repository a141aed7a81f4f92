package dto

import "time"

// CreateProductRequest entrada para agregar un producto al catálogo.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	InitialStock int    `json:"initial_stock" validate:"min=0"`
	Unit         string `json:"unit" validate:"required"`
	MinStock     *int   `json:"min_stock,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrentStock int       `json:"current_stock"`
	Unit         string    `json:"unit"`
	MinStock     *int      `json:"min_stock,omitempty"`
	InitialStock int       `json:"initial_stock"`
	LowStock     bool      `json:"low_stock"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
