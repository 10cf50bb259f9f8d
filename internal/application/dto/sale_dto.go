package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	VoucherID       string            `json:"voucherId" validate:"required,max=50"`
	CustomerID      string            `json:"customerId,omitempty" validate:"omitempty,max=50"`
	CustomerName    string            `json:"customerName,omitempty" validate:"omitempty,max=200"`
	CustomerTaxCode string            `json:"customerTaxCode,omitempty" validate:"omitempty,max=50"`
	CustomerAddress string            `json:"customerAddress,omitempty" validate:"omitempty,max=300"`
	Description     string            `json:"description,omitempty" validate:"omitempty,max=500"`
	VoucherDate     *time.Time        `json:"voucherDate,omitempty"`
	BankAccount     string            `json:"bankAccount,omitempty" validate:"omitempty,max=50"`
	BankName        string            `json:"bankName,omitempty" validate:"omitempty,max=200"`
	Items           []SaleItemRequest `json:"items" validate:"dive"`
}

// SaleItemRequest línea de venta. Amount, VATAmount, UserID y CreatedAt son opcionales:
// si llegan se guardan tal cual, si no se calculan / toman del contexto.
type SaleItemRequest struct {
	GoodsID       string           `json:"goodsId" validate:"required,max=50"`
	GoodsName     string           `json:"goodsName,omitempty" validate:"omitempty,max=200"`
	Unit          string           `json:"unit,omitempty" validate:"omitempty,max=20"`
	Quantity      decimal.Decimal  `json:"quantity" validate:"dgt0"`
	UnitPrice     decimal.Decimal  `json:"unitPrice" validate:"dgte0"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DebitAccount  string           `json:"debitAccount,omitempty" validate:"omitempty,max=20"`
	CreditAccount string           `json:"creditAccount,omitempty" validate:"omitempty,max=20"`
	WarehouseID   string           `json:"warehouseId,omitempty" validate:"omitempty,max=50"`
	Promotion     decimal.Decimal  `json:"promotion" validate:"dgte0"`
	VATRate       decimal.Decimal  `json:"vatRate" validate:"dgte0"`
	VATAmount     *decimal.Decimal `json:"vatAmount,omitempty"`
	UserID        string           `json:"userId,omitempty" validate:"omitempty,max=50"`
	CreatedAt     *time.Time       `json:"createdAt,omitempty"`
}

// SaleResult payload de una venta registrada.
type SaleResult struct {
	VoucherID    string          `json:"voucherId"`
	AffectedRows int64           `json:"affectedRows"`
	LineCount    int             `json:"lineCount"`
	Total        decimal.Decimal `json:"total"`
}

// VoucherResponse comprobante con detalle para GET /api/sales/:id.
type VoucherResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customerId,omitempty"`
	CustomerName    string                `json:"customerName,omitempty"`
	CustomerTaxCode string                `json:"customerTaxCode,omitempty"`
	CustomerAddress string                `json:"customerAddress,omitempty"`
	Description     string                `json:"description,omitempty"`
	VoucherDate     time.Time             `json:"voucherDate"`
	BankAccount     string                `json:"bankAccount,omitempty"`
	BankName        string                `json:"bankName,omitempty"`
	CreatedBy       string                `json:"createdBy"`
	CreatedAt       time.Time             `json:"createdAt"`
	Total           decimal.Decimal       `json:"total"`
	Lines           []VoucherLineResponse `json:"lines,omitempty"`
}

// VoucherLineResponse línea de comprobante en respuestas.
type VoucherLineResponse struct {
	ID            string          `json:"id"`
	LineNo        int             `json:"lineNo"`
	GoodsID       string          `json:"goodsId"`
	GoodsName     string          `json:"goodsName"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Amount        decimal.Decimal `json:"amount"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	WarehouseID   string          `json:"warehouseId,omitempty"`
	Promotion     decimal.Decimal `json:"promotion"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	UserID        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// VoucherListResponse lista paginada de comprobantes (sin líneas).
type VoucherListResponse struct {
	Items []VoucherResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateReturnRequest body para POST /api/sales/:id/returns.
type CreateReturnRequest struct {
	Reason string              `json:"reason,omitempty" validate:"omitempty,max=300"`
	Items  []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReturnItemRequest mercancía y cantidad devuelta. WarehouseID vacío = bodega de la línea original.
type ReturnItemRequest struct {
	GoodsID     string          `json:"goodsId" validate:"required,max=50"`
	Quantity    decimal.Decimal `json:"quantity" validate:"dgt0"`
	WarehouseID string          `json:"warehouseId,omitempty" validate:"omitempty,max=50"`
}

// ReturnResult payload de una devolución registrada.
type ReturnResult struct {
	ReturnID  string `json:"returnId"`
	VoucherID string `json:"voucherId"`
	LineCount int    `json:"lineCount"`
}
