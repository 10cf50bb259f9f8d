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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, tax_code, address, email, phone, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. tax_code repetido = ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.TaxCode, c.Address, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var taxCode *string
	if err := row.Scan(&c.ID, &c.Name, &taxCode, &c.Address, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if taxCode != nil {
		c.TaxCode = *taxCode
	}
	return &c, nil
}
