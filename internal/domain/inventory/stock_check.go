package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// CheckAvailability aplica la regla de disponibilidad de una línea de venta (servicio de dominio).
// goods == nil → ErrItemNotFound; OnHand <= 0 → ErrOutOfStock; OnHand < cantidad → ErrInsufficientStock.
// El error devuelto es siempre *domain.StockError.
func CheckAvailability(goodsID string, goods *entity.Goods, requested decimal.Decimal, lineNo int) error {
	if goods == nil {
		return &domain.StockError{Err: domain.ErrItemNotFound, GoodsID: goodsID, LineNo: lineNo}
	}
	if goods.OnHand.LessThanOrEqual(decimal.Zero) {
		return &domain.StockError{Err: domain.ErrOutOfStock, GoodsID: goods.ID, GoodsName: goods.Name, LineNo: lineNo}
	}
	if goods.OnHand.LessThan(requested) {
		return &domain.StockError{Err: domain.ErrInsufficientStock, GoodsID: goods.ID, GoodsName: goods.Name, LineNo: lineNo}
	}
	return nil
}

// LineAmount calcula importe e IVA de una línea: amount = qty * price; vat = amount * rate / 100.
// vatRate siempre es porcentaje (19 = 19%, 1 = 1%).
func LineAmount(qty, unitPrice, vatRate decimal.Decimal) (amount, vat decimal.Decimal) {
	amount = qty.Mul(unitPrice)
	return amount, amount.Mul(vatRate).Div(decimal.NewFromInt(100)).Round(2)
}
