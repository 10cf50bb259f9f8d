package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// GoodsRepository define el puerto de persistencia para Goods (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando la mercancía no existe.
type GoodsRepository interface {
	Create(ctx context.Context, goods *entity.Goods) error
	GetByID(ctx context.Context, id string) (*entity.Goods, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Goods, error)
	Update(ctx context.Context, goods *entity.Goods) error
	// Upsert inserta o reemplaza datos maestros (nombre, unidad, precio, IVA) sin tocar OnHand
	// salvo en la inserción.
	Upsert(ctx context.Context, goods *entity.Goods) error
	// AdjustOnHand suma delta a la existencia con compare-and-set: si el resultado quedaría
	// negativo no modifica nada y devuelve domain.ErrStockConflict.
	AdjustOnHand(ctx context.Context, id string, delta decimal.Decimal) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Goods, error)
	// ListBelow devuelve las mercancías con existencia menor a threshold.
	ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*entity.Goods, error)
	Delete(ctx context.Context, id string) error
}
