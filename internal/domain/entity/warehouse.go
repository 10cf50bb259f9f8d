package entity

import "time"

// Warehouse representa una bodega donde se almacena mercancía.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
