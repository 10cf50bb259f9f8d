package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemUser se usa como autor cuando la petición no trae identidad.
const SystemUser = "SYSTEM"

// Voucher representa la cabecera de un comprobante de venta.
// Se crea al aceptar una venta y no se modifica después.
type Voucher struct {
	ID              string
	CustomerID      string // opcional
	CustomerName    string
	CustomerTaxCode string
	CustomerAddress string
	Description     string
	VoucherDate     time.Time
	BankAccount     string // datos de transferencia, opcionales
	BankName        string
	CreatedBy       string
	CreatedAt       time.Time
	Lines           []*VoucherLine
}

// Total suma los importes de las líneas más su IVA, menos promociones.
func (v *Voucher) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.Amount).Add(l.VATAmount).Sub(l.Promotion)
	}
	return total
}

// VoucherLine representa una línea de un comprobante. Pertenece siempre a su Voucher.
type VoucherLine struct {
	ID            string
	VoucherID     string
	LineNo        int
	GoodsID       string
	GoodsName     string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Amount        decimal.Decimal
	DebitAccount  string // cuenta contable débito (ej. 131)
	CreditAccount string // cuenta contable crédito (ej. 5111)
	WarehouseID   string
	Promotion     decimal.Decimal
	VATRate       decimal.Decimal
	VATAmount     decimal.Decimal
	UserID        string
	CreatedAt     time.Time
}
