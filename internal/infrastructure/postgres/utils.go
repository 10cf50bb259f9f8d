package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

// isForeignKeyViolation verifica si el registro sigue referenciado (23503).
func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// txConflict convierte un deadlock (40P01) o un fallo de serialización (40001) en
// domain.ErrStockConflict, que el cliente puede reintentar. Otros errores pasan igual.
func txConflict(err error) error {
	if hasPgCode(err, pgDeadlockDetected) || hasPgCode(err, pgSerializationFailure) {
		return fmt.Errorf("%w: %v", domain.ErrStockConflict, err)
	}
	return err
}
