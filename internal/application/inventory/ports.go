package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		goodsRepo repository.GoodsRepository,
		ledgerRepo repository.WarehouseTransactionRepository,
	) error) error
}
