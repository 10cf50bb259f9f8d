package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code    string `json:"code" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// UpdateWarehouseRequest cambios parciales de una bodega (el código no cambia).
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
