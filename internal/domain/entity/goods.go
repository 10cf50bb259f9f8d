package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goods representa una mercancía vendible. OnHand es la existencia disponible
// y nunca debe quedar negativa como efecto de una venta.
type Goods struct {
	ID        string
	Name      string
	Unit      string          // unidad de medida (und, kg, caja...)
	SalePrice decimal.Decimal // precio de venta
	VATRate   decimal.Decimal // % IVA: 0, 5, 8, 10...
	OnHand    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
