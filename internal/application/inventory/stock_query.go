package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// StockQueryUseCase consultas sobre el libro de bodega.
type StockQueryUseCase struct {
	ledgerRepo repository.WarehouseTransactionRepository
}

func NewStockQueryUseCase(ledgerRepo repository.WarehouseTransactionRepository) *StockQueryUseCase {
	return &StockQueryUseCase{ledgerRepo: ledgerRepo}
}

// StockSummary existencia por mercancía y bodega; warehouseID vacío agrega todas.
func (uc *StockQueryUseCase) StockSummary(ctx context.Context, warehouseID string) ([]dto.StockSummaryResponse, error) {
	rows, err := uc.ledgerRepo.StockByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("resumen de existencias: %w", err)
	}
	out := make([]dto.StockSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockSummaryResponse{
			GoodsID:     r.GoodsID,
			GoodsName:   r.GoodsName,
			WarehouseID: r.WarehouseID,
			Quantity:    r.Quantity,
		})
	}
	return out, nil
}

// Movements historial de una mercancía, más reciente primero.
func (uc *StockQueryUseCase) Movements(ctx context.Context, goodsID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if goodsID == "" {
		return nil, fmt.Errorf("%w: goods_id es requerido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.ledgerRepo.ListByGoods(ctx, goodsID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("historial de movimientos: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}
