package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: mercancías bajo el umbral,
// priorizadas por lo vendido en la ventana reciente.
type ReplenishmentUseCase struct {
	goodsRepo  repository.GoodsRepository
	ledgerRepo repository.WarehouseTransactionRepository
	log        zerolog.Logger
	window     time.Duration
}

// NewReplenishmentUseCase construye el caso de uso de reposición con ventana de 90 días.
func NewReplenishmentUseCase(
	goodsRepo repository.GoodsRepository,
	ledgerRepo repository.WarehouseTransactionRepository,
	log zerolog.Logger,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		goodsRepo:  goodsRepo,
		ledgerRepo: ledgerRepo,
		log:        log.With().Str("usecase", "replenishment").Logger(),
		window:     90 * 24 * time.Hour,
	}
}

// GenerateReplenishmentList devuelve las mercancías con existencia menor a threshold.
// Pedido sugerido = 1.5 * threshold - existencia.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, threshold decimal.Decimal) ([]dto.ReplenishmentSuggestion, error) {
	if !threshold.IsPositive() {
		return nil, fmt.Errorf("%w: el umbral debe ser mayor a cero", domain.ErrInvalidInput)
	}

	// 1. Mercancías bajo el umbral
	low, err := uc.goodsRepo.ListBelow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestion{}, nil
	}

	// 2. Ventas recientes por mercancía; si falla se prioriza solo por déficit
	soldByID := make(map[string]decimal.Decimal)
	sold, err := uc.ledgerRepo.SoldSince(ctx, time.Now().Add(-uc.window))
	if err != nil {
		uc.log.Warn().Err(err).Msg("ventas recientes no disponibles, se prioriza por existencia")
	}
	for _, s := range sold {
		soldByID[s.GoodsID] = s.Quantity
	}

	ideal := threshold.Mul(decimal.NewFromFloat(1.5))
	out := make([]dto.ReplenishmentSuggestion, 0, len(low))
	for _, g := range low {
		qty := ideal.Sub(g.OnHand)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		out = append(out, dto.ReplenishmentSuggestion{
			GoodsID:           g.ID,
			GoodsName:         g.Name,
			Unit:              g.Unit,
			OnHand:            g.OnHand,
			Threshold:         threshold,
			SuggestedOrderQty: qty,
			UnitsSold:         soldByID[g.ID],
		})
	}

	// 3. Más vendido primero; empate: menor existencia
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.UnitsSold.Equal(b.UnitsSold) {
			return a.UnitsSold.GreaterThan(b.UnitsSold)
		}
		return a.OnHand.LessThan(b.OnHand)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
