package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.WarehouseTransactionRepository = (*WarehouseTransactionRepo)(nil)

// WarehouseTransactionRepo libro de bodega (warehouse_transactions). Solo inserción y lectura.
type WarehouseTransactionRepo struct {
	q Querier
}

// NewWarehouseTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseTransactionRepository(q Querier) *WarehouseTransactionRepo {
	return &WarehouseTransactionRepo{q: q}
}

func (r *WarehouseTransactionRepo) Create(ctx context.Context, t *entity.WarehouseTransaction) error {
	query := `
		INSERT INTO warehouse_transactions (id, reference, goods_id, warehouse_id, type, quantity, note, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Reference, t.GoodsID, t.WarehouseID, t.Type, t.Quantity, t.Note, t.Date, t.CreatedAt, t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse transaction: %w", err)
	}
	return nil
}

func (r *WarehouseTransactionRepo) ListByGoods(ctx context.Context, goodsID string, limit, offset int) ([]*entity.WarehouseTransaction, error) {
	query := `
		SELECT id, reference, goods_id, warehouse_id, type, quantity, note, date, created_at, created_by
		FROM warehouse_transactions WHERE goods_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, goodsID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.WarehouseTransaction
	for rows.Next() {
		var t entity.WarehouseTransaction
		if err := rows.Scan(&t.ID, &t.Reference, &t.GoodsID, &t.WarehouseID, &t.Type, &t.Quantity,
			&t.Note, &t.Date, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan warehouse transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// StockByWarehouse suma el libro por mercancía y bodega.
func (r *WarehouseTransactionRepo) StockByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockSummary, error) {
	query := `
		SELECT t.goods_id, g.name, t.warehouse_id, SUM(t.quantity)
		FROM warehouse_transactions t
		JOIN goods g ON g.id = t.goods_id
		WHERE $1 = '' OR t.warehouse_id = $1
		GROUP BY t.goods_id, g.name, t.warehouse_id
		ORDER BY g.name, t.warehouse_id`
	return r.summaries(ctx, query, warehouseID)
}

func (r *WarehouseTransactionRepo) ReturnedQuantity(ctx context.Context, voucherID, goodsID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM warehouse_transactions
		WHERE type = 'RETURN' AND reference = $1 AND goods_id = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, voucherID, goodsID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("returned quantity: %w", err)
	}
	return sum, nil
}

// SoldSince ventas netas de devoluciones por mercancía. Las salidas son negativas en el libro.
func (r *WarehouseTransactionRepo) SoldSince(ctx context.Context, since time.Time) ([]entity.StockSummary, error) {
	query := `
		SELECT t.goods_id, g.name, '' AS warehouse_id, -SUM(t.quantity) AS sold
		FROM warehouse_transactions t
		JOIN goods g ON g.id = t.goods_id
		WHERE t.type IN ('SALE', 'RETURN') AND t.date >= $1
		GROUP BY t.goods_id, g.name
		HAVING -SUM(t.quantity) > 0
		ORDER BY sold DESC`
	return r.summaries(ctx, query, since)
}

func (r *WarehouseTransactionRepo) summaries(ctx context.Context, query string, args ...any) ([]entity.StockSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()

	var out []entity.StockSummary
	for rows.Next() {
		var s entity.StockSummary
		if err := rows.Scan(&s.GoodsID, &s.GoodsName, &s.WarehouseID, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
