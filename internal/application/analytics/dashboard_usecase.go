// Package analytics contiene los reportes de ventas para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

const dashboardTopGoods = 5 // mercancías en el widget del dashboard

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
type DashboardUseCase struct {
	repo repository.SalesAnalyticsRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.SalesAnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary lanza las tres consultas en paralelo: métricas de hoy, del mes y top del mes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := uc.now()

	// Hoy: 00:00:00 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 – fin de hoy
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		today, month entity.SalesMetrics
		top          []entity.TopGoods
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		today, err = uc.repo.SalesMetrics(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: métricas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		month, err = uc.repo.SalesMetrics(gctx, monthStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: métricas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		top, err = uc.repo.TopGoods(gctx, monthStart, todayEnd, dashboardTopGoods)
		if err != nil {
			return fmt.Errorf("dashboard: top mercancías: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]dto.TopGoods, 0, len(top))
	for _, t := range top {
		items = append(items, dto.TopGoods{
			GoodsID:      t.GoodsID,
			GoodsName:    t.GoodsName,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue.Round(2),
		})
	}
	return &dto.DashboardSummary{
		TodaySales:      today.Revenue.Round(2),
		TodayVAT:        today.VAT.Round(2),
		TodayVouchers:   today.Vouchers,
		MonthlySales:    month.Revenue.Round(2),
		MonthlyVAT:      month.VAT.Round(2),
		MonthlyVouchers: month.Vouchers,
		TopGoods:        items,
		DateLabel:       monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
