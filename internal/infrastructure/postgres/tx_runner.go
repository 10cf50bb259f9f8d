package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	goodsRepo repository.GoodsRepository,
	ledgerRepo repository.WarehouseTransactionRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewGoodsRepository(tx), NewWarehouseTransactionRepository(tx))
	})
}

// RunSale inicia una transacción con los repos de venta: chequeo de existencias,
// cabecera, líneas y descuento quedan en el mismo Commit.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	goodsRepo repository.GoodsRepository,
	voucherRepo repository.VoucherRepository,
	ledgerRepo repository.WarehouseTransactionRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewGoodsRepository(tx), NewVoucherRepository(tx), NewWarehouseTransactionRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return txConflict(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return txConflict(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
