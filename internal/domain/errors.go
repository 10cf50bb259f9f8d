package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del flujo de venta.
	ErrItemNotFound      = errors.New("mercancía no encontrada")
	ErrOutOfStock        = errors.New("mercancía agotada")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockConflict     = errors.New("el stock cambió durante la operación, reintente")
	ErrVoucherExists     = errors.New("el comprobante ya existe")
	ErrReturnExceedsSold = errors.New("la cantidad devuelta supera la vendida")
)

// StockError describe un fallo de disponibilidad para una línea concreta.
// Envuelve ErrItemNotFound, ErrOutOfStock o ErrInsufficientStock (usar errors.Is).
type StockError struct {
	Err       error
	GoodsID   string
	GoodsName string
	LineNo    int
}

func (e *StockError) Error() string {
	switch e.Err {
	case ErrItemNotFound:
		return "no existe la mercancía con id " + e.GoodsID
	case ErrOutOfStock:
		return "la mercancía " + e.GoodsName + " está agotada"
	case ErrInsufficientStock:
		return "no hay stock suficiente de " + e.GoodsName
	}
	return e.Err.Error()
}

func (e *StockError) Unwrap() error { return e.Err }
