package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// SalesAnalyticsRepository consultas read-only sobre comprobantes para reportes.
type SalesAnalyticsRepository interface {
	// SalesMetrics devuelve ceros si el período no tiene ventas.
	SalesMetrics(ctx context.Context, from, to time.Time) (entity.SalesMetrics, error)
	// TopGoods ordena por ingreso descendente.
	TopGoods(ctx context.Context, from, to time.Time, limit int) ([]entity.TopGoods, error)
}
