package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity positiva; en ADJUSTMENT el signo indica entrada (+) o salida (-).
type RegisterMovementRequest struct {
	GoodsID     string          `json:"goodsId" validate:"required,max=50"`
	WarehouseID string          `json:"warehouseId" validate:"required,max=50"`
	Type        string          `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity    decimal.Decimal `json:"quantity"`
	Note        string          `json:"note,omitempty" validate:"omitempty,max=300"`
}

// MovementResponse asiento del libro de bodega.
type MovementResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	GoodsID     string          `json:"goodsId"`
	WarehouseID string          `json:"warehouseId"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Note        string          `json:"note,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"createdBy"`
}

// StockSummaryResponse existencia agregada por mercancía (y bodega) desde el libro.
type StockSummaryResponse struct {
	GoodsID     string          `json:"goodsId"`
	GoodsName   string          `json:"goodsName"`
	WarehouseID string          `json:"warehouseId,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReplenishmentSuggestion mercancía bajo el umbral con la cantidad sugerida de pedido.
type ReplenishmentSuggestion struct {
	GoodsID           string          `json:"goodsId"`
	GoodsName         string          `json:"goodsName"`
	Unit              string          `json:"unit"`
	OnHand            decimal.Decimal `json:"onHand"`
	Threshold         decimal.Decimal `json:"threshold"`
	SuggestedOrderQty decimal.Decimal `json:"suggestedOrderQty"`
	UnitsSold         decimal.Decimal `json:"unitsSold"`
	Priority          int             `json:"priority"`
}
