package dto

import "github.com/shopspring/decimal"

// DashboardSummary respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, más el top de mercancías del mes.
type DashboardSummary struct {
	TodaySales    decimal.Decimal `json:"todaySales"`
	TodayVAT      decimal.Decimal `json:"todayVat"`
	TodayVouchers int             `json:"todayVouchers"`

	MonthlySales    decimal.Decimal `json:"monthlySales"`
	MonthlyVAT      decimal.Decimal `json:"monthlyVat"`
	MonthlyVouchers int             `json:"monthlyVouchers"`

	TopGoods  []TopGoods `json:"topGoods"`
	DateLabel string     `json:"dateLabel"` // ej: "Febrero 2026"
}

// TopGoods fila del widget de más vendidos.
type TopGoods struct {
	GoodsID      string          `json:"goodsId"`
	GoodsName    string          `json:"goodsName"`
	QuantitySold decimal.Decimal `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
