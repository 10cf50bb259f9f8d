package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// VoucherRepository define el puerto de persistencia para comprobantes de venta y sus líneas.
type VoucherRepository interface {
	// Create persiste cabecera y líneas. Devuelve las filas afectadas según la base de datos.
	// Un id repetido devuelve domain.ErrVoucherExists.
	Create(ctx context.Context, voucher *entity.Voucher) (int64, error)
	// GetByID devuelve el comprobante con sus líneas ordenadas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Voucher, error)
	// List devuelve cabeceras (sin líneas) filtradas por fecha del comprobante.
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Voucher, error)
}
