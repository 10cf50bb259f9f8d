package entity

import "time"

// Customer representa un cliente al que se le emiten comprobantes.
type Customer struct {
	ID        string
	Name      string
	TaxCode   string // NIT / mã số thuế
	Address   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
