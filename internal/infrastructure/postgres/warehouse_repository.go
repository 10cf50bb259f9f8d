package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega; código repetido = ErrDuplicate.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, w.ID, w.Code, w.Name, w.Address, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `SELECT id, code, name, address, created_at, updated_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET name = $2, address = $3, updated_at = $4 WHERE id = $1`,
		w.ID, w.Name, w.Address, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, code, name, address, created_at, updated_at
		FROM warehouses ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
