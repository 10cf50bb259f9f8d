package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// WarehouseTransactionRepository define el puerto del libro de bodega.
type WarehouseTransactionRepository interface {
	Create(ctx context.Context, tx *entity.WarehouseTransaction) error
	ListByGoods(ctx context.Context, goodsID string, limit, offset int) ([]*entity.WarehouseTransaction, error)
	// StockByWarehouse agrega el libro por mercancía (y bodega). warehouseID vacío = todas las bodegas.
	StockByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockSummary, error)
	// ReturnedQuantity suma lo ya devuelto de una mercancía para un comprobante.
	ReturnedQuantity(ctx context.Context, voucherID, goodsID string) (decimal.Decimal, error)
	// SoldSince suma las salidas por venta (netas de devoluciones) por mercancía desde since.
	// Quantity es positiva.
	SoldSince(ctx context.Context, since time.Time) ([]entity.StockSummary, error)
}
