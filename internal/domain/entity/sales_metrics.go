package entity

import "github.com/shopspring/decimal"

// SalesMetrics totales de ventas de un período.
type SalesMetrics struct {
	Revenue  decimal.Decimal // suma de importes sin IVA
	VAT      decimal.Decimal
	Vouchers int
}

// TopGoods ranking de mercancías vendidas en un período.
type TopGoods struct {
	GoodsID      string
	GoodsName    string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
}
