package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.VoucherRepository = (*VoucherRepo)(nil)

const voucherColumns = `id, customer_id, customer_name, customer_tax_code, customer_address, description,
	voucher_date, bank_account, bank_name, created_by, created_at`

const voucherLineColumns = `id, voucher_id, line_no, goods_id, goods_name, unit, quantity, unit_price, amount,
	debit_account, credit_account, warehouse_id, promotion, vat_rate, vat_amount, user_id, created_at`

// VoucherRepo persistencia de comprobantes (vouchers + voucher_lines). Usable con pool o tx.
type VoucherRepo struct {
	q Querier
}

func NewVoucherRepository(q Querier) *VoucherRepo {
	return &VoucherRepo{q: q}
}

// Create inserta la cabecera y luego las líneas en un batch. Las filas afectadas son la suma
// de lo que reporta cada INSERT. Debe llamarse dentro de una tx para que sea atómico.
func (r *VoucherRepo) Create(ctx context.Context, v *entity.Voucher) (int64, error) {
	header := `INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	cmd, err := r.q.Exec(ctx, header,
		v.ID, v.CustomerID, v.CustomerName, v.CustomerTaxCode, v.CustomerAddress, v.Description,
		v.VoucherDate, v.BankAccount, v.BankName, v.CreatedBy, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrVoucherExists
		}
		return 0, fmt.Errorf("insert voucher: %w", err)
	}
	affected := cmd.RowsAffected()
	if len(v.Lines) == 0 {
		return affected, nil
	}

	line := `INSERT INTO voucher_lines (` + voucherLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	batch := &pgx.Batch{}
	for _, l := range v.Lines {
		batch.Queue(line,
			l.ID, v.ID, l.LineNo, l.GoodsID, l.GoodsName, l.Unit, l.Quantity, l.UnitPrice, l.Amount,
			l.DebitAccount, l.CreditAccount, l.WarehouseID, l.Promotion, l.VATRate, l.VATAmount, l.UserID, l.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, l := range v.Lines {
		cmd, err := br.Exec()
		if err != nil {
			return 0, fmt.Errorf("insert voucher line %d: %w", l.LineNo, err)
		}
		affected += cmd.RowsAffected()
	}
	return affected, nil
}

// GetByID devuelve cabecera + líneas ordenadas por line_no.
func (r *VoucherRepo) GetByID(ctx context.Context, id string) (*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`
	v, err := scanVoucher(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT `+voucherLineColumns+` FROM voucher_lines WHERE voucher_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("get voucher lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.VoucherLine
		if err := rows.Scan(
			&l.ID, &l.VoucherID, &l.LineNo, &l.GoodsID, &l.GoodsName, &l.Unit, &l.Quantity, &l.UnitPrice, &l.Amount,
			&l.DebitAccount, &l.CreditAccount, &l.WarehouseID, &l.Promotion, &l.VATRate, &l.VATAmount, &l.UserID, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan voucher line: %w", err)
		}
		v.Lines = append(v.Lines, &l)
	}
	return v, rows.Err()
}

// List cabeceras en rango de fecha, más recientes primero.
func (r *VoucherRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + ` FROM vouchers
		WHERE ($1::timestamptz IS NULL OR voucher_date >= $1)
		  AND ($2::timestamptz IS NULL OR voucher_date <= $2)
		ORDER BY voucher_date DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVoucher(row pgx.Row) (*entity.Voucher, error) {
	var v entity.Voucher
	var customerID *string
	if err := row.Scan(
		&v.ID, &customerID, &v.CustomerName, &v.CustomerTaxCode, &v.CustomerAddress, &v.Description,
		&v.VoucherDate, &v.BankAccount, &v.BankName, &v.CreatedBy, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	if customerID != nil {
		v.CustomerID = *customerID
	}
	return &v, nil
}
