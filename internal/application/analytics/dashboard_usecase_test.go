package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

type fakeAnalytics struct {
	mu     sync.Mutex
	ranges [][2]time.Time
	err    error
}

func (f *fakeAnalytics) SalesMetrics(_ context.Context, from, to time.Time) (entity.SalesMetrics, error) {
	f.mu.Lock()
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	f.mu.Unlock()
	if f.err != nil {
		return entity.SalesMetrics{}, f.err
	}
	if from.Day() == 1 && from.Hour() == 0 && to.Sub(from) > 24*time.Hour {
		return entity.SalesMetrics{Revenue: decimal.RequireFromString("150000.456"), VAT: decimal.NewFromInt(28500), Vouchers: 12}, nil
	}
	return entity.SalesMetrics{Revenue: decimal.NewFromInt(20000), VAT: decimal.NewFromInt(3800), Vouchers: 2}, nil
}

func (f *fakeAnalytics) TopGoods(_ context.Context, _, _ time.Time, limit int) ([]entity.TopGoods, error) {
	return []entity.TopGoods{
		{GoodsID: "G1", GoodsName: "Tornillo", QuantitySold: decimal.NewFromInt(40), Revenue: decimal.NewFromInt(40000)},
	}[:min(limit, 1)], nil
}

func TestDashboard_ResumenDelDiaYDelMes(t *testing.T) {
	repo := &fakeAnalytics{}
	uc := NewDashboardUseCase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.February, 17, 15, 30, 0, 0, time.UTC) }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "20000", out.TodaySales.String())
	assert.Equal(t, 2, out.TodayVouchers)
	assert.Equal(t, "150000.46", out.MonthlySales.String())
	assert.Equal(t, 12, out.MonthlyVouchers)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
	require.Len(t, out.TopGoods, 1)
	assert.Equal(t, "G1", out.TopGoods[0].GoodsID)

	require.Len(t, repo.ranges, 2)
}

func TestDashboard_ErrorDelRepositorio(t *testing.T) {
	uc := NewDashboardUseCase(&fakeAnalytics{err: errors.New("timeout")})
	_, err := uc.GetSummary(context.Background())
	assert.ErrorContains(t, err, "timeout")
}
