package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*SalesAnalyticsRepo)(nil)

// SalesAnalyticsRepo agregados sobre vouchers / voucher_lines.
type SalesAnalyticsRepo struct {
	q Querier
}

func NewSalesAnalyticsRepository(q Querier) *SalesAnalyticsRepo {
	return &SalesAnalyticsRepo{q: q}
}

// SalesMetrics usa COALESCE para devolver cero en períodos sin ventas.
func (r *SalesAnalyticsRepo) SalesMetrics(ctx context.Context, from, to time.Time) (entity.SalesMetrics, error) {
	const query = `
	SELECT
	    COALESCE(SUM(l.amount),     0) AS revenue,
	    COALESCE(SUM(l.vat_amount), 0) AS vat,
	    COUNT(DISTINCT v.id)           AS vouchers
	FROM vouchers v
	LEFT JOIN voucher_lines l ON l.voucher_id = v.id
	WHERE v.voucher_date BETWEEN $1 AND $2`

	var m entity.SalesMetrics
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&m.Revenue, &m.VAT, &m.Vouchers); err != nil {
		return entity.SalesMetrics{}, fmt.Errorf("analytics.SalesMetrics: %w", err)
	}
	return m, nil
}

func (r *SalesAnalyticsRepo) TopGoods(ctx context.Context, from, to time.Time, limit int) ([]entity.TopGoods, error) {
	const query = `
	SELECT
	    l.goods_id,
	    COALESCE(g.name, MAX(l.goods_name)) AS goods_name,
	    SUM(l.quantity)                     AS quantity_sold,
	    SUM(l.amount)                       AS revenue
	FROM voucher_lines l
	JOIN vouchers v ON v.id = l.voucher_id
	LEFT JOIN goods g ON g.id = l.goods_id
	WHERE v.voucher_date BETWEEN $1 AND $2
	GROUP BY l.goods_id, g.name
	ORDER BY revenue DESC, l.goods_id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopGoods: %w", err)
	}
	defer rows.Close()

	var out []entity.TopGoods
	for rows.Next() {
		var t entity.TopGoods
		if err := rows.Scan(&t.GoodsID, &t.GoodsName, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopGoods scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
