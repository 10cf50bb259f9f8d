package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoodsRequest entrada para crear una mercancía. OnHand es la existencia inicial.
type CreateGoodsRequest struct {
	ID        string          `json:"id" validate:"required,max=50"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Unit      string          `json:"unit" validate:"required,max=20"`
	SalePrice decimal.Decimal `json:"salePrice" validate:"dgte0"`
	VATRate   decimal.Decimal `json:"vatRate" validate:"dgte0"`
	OnHand    decimal.Decimal `json:"onHand" validate:"dgte0"`
}

// UpdateGoodsRequest entrada para actualizar una mercancía (sin OnHand: se maneja vía movimientos).
type UpdateGoodsRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit      *string          `json:"unit" validate:"omitempty,max=20"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	VATRate   *decimal.Decimal `json:"vatRate"`
}

// GoodsResponse salida de una mercancía.
type GoodsResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	SalePrice decimal.Decimal `json:"salePrice"`
	VATRate   decimal.Decimal `json:"vatRate"`
	OnHand    decimal.Decimal `json:"onHand"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GoodsListResponse lista paginada de mercancías.
type GoodsListResponse struct {
	Items []GoodsResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
