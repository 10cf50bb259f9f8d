package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.GoodsRepository = (*GoodsRepo)(nil)

const goodsColumns = `id, name, unit, sale_price, vat_rate, on_hand, created_at, updated_at`

// GoodsRepo implementación del puerto GoodsRepository sobre PostgreSQL (usable con pool o tx).
type GoodsRepo struct {
	q Querier
}

// NewGoodsRepository construye el adaptador de persistencia para mercancías. Pasar pool o tx (Querier).
func NewGoodsRepository(q Querier) *GoodsRepo {
	return &GoodsRepo{q: q}
}

func (r *GoodsRepo) Create(ctx context.Context, g *entity.Goods) error {
	query := `
		INSERT INTO goods (` + goodsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, g.ID, g.Name, g.Unit, g.SalePrice, g.VATRate, g.OnHand, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert goods: %w", err)
	}
	return nil
}

func (r *GoodsRepo) GetByID(ctx context.Context, id string) (*entity.Goods, error) {
	return r.get(ctx, `SELECT `+goodsColumns+` FROM goods WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *GoodsRepo) GetForUpdate(ctx context.Context, id string) (*entity.Goods, error) {
	return r.get(ctx, `SELECT `+goodsColumns+` FROM goods WHERE id = $1 FOR UPDATE`, id)
}

func (r *GoodsRepo) get(ctx context.Context, query, id string) (*entity.Goods, error) {
	g, err := scanGoods(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods: %w", err)
	}
	return g, nil
}

// Update actualiza datos maestros; on_hand no se toca aquí.
func (r *GoodsRepo) Update(ctx context.Context, g *entity.Goods) error {
	query := `
		UPDATE goods SET name = $2, unit = $3, sale_price = $4, vat_rate = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, g.ID, g.Name, g.Unit, g.SalePrice, g.VATRate, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update goods: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert usado por la importación masiva: en conflicto solo actualiza datos maestros.
func (r *GoodsRepo) Upsert(ctx context.Context, g *entity.Goods) error {
	query := `
		INSERT INTO goods (` + goodsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, unit = EXCLUDED.unit, sale_price = EXCLUDED.sale_price,
			vat_rate = EXCLUDED.vat_rate, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, g.ID, g.Name, g.Unit, g.SalePrice, g.VATRate, g.OnHand, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert goods: %w", err)
	}
	return nil
}

// AdjustOnHand suma delta con compare-and-set: la condición on_hand + delta >= 0 se evalúa
// en la misma sentencia, así dos ventas concurrentes nunca dejan la existencia negativa.
func (r *GoodsRepo) AdjustOnHand(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `
		UPDATE goods SET on_hand = on_hand + $2, updated_at = now()
		WHERE id = $1 AND on_hand + $2 >= 0`
	cmd, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust on_hand: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM goods WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("adjust on_hand: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStockConflict
}

// List filtra por id o nombre (ILIKE) ordenado por nombre.
func (r *GoodsRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Goods, error) {
	query := `
		SELECT ` + goodsColumns + ` FROM goods
		WHERE $1 = '' OR id ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, search, limit, offset)
}

func (r *GoodsRepo) ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*entity.Goods, error) {
	query := `SELECT ` + goodsColumns + ` FROM goods WHERE on_hand < $1 ORDER BY on_hand, name`
	return r.list(ctx, query, threshold)
}

func (r *GoodsRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Goods, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()

	var out []*entity.Goods
	for rows.Next() {
		g, err := scanGoods(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goods: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete elimina la mercancía; si tiene ventas o movimientos devuelve ErrConflict.
func (r *GoodsRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM goods WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la mercancía tiene movimientos", domain.ErrConflict)
		}
		return fmt.Errorf("delete goods: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGoods(row pgx.Row) (*entity.Goods, error) {
	var g entity.Goods
	if err := row.Scan(&g.ID, &g.Name, &g.Unit, &g.SalePrice, &g.VATRate, &g.OnHand, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
