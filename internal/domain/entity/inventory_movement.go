package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de bodega.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
	MovementTypeSALE       = "SALE"       // salida por venta
	MovementTypeRETURN     = "RETURN"     // entrada por devolución de venta
)

// WarehouseTransaction es un asiento del libro de bodega. La existencia por bodega
// se calcula sumando Quantity (positiva entrada, negativa salida).
type WarehouseTransaction struct {
	ID          string
	Reference   string // id del comprobante o de la operación que lo originó
	GoodsID     string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	Note        string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

// StockSummary existencia agregada de una mercancía calculada desde el libro.
type StockSummary struct {
	GoodsID     string
	GoodsName   string
	WarehouseID string
	Quantity    decimal.Decimal
}
