package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// ReturnSaleUseCase registra devoluciones parciales o totales de un comprobante.
// El comprobante no se modifica: cada devolución es un asiento RETURN en el libro.
// Con DeductStock en false la venta no movió existencias y la devolución tampoco.
type ReturnSaleUseCase struct {
	txRunner TxRunner
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

func NewReturnSaleUseCase(txRunner TxRunner, cfg Config, log zerolog.Logger) *ReturnSaleUseCase {
	return &ReturnSaleUseCase{
		txRunner: txRunner,
		cfg:      cfg,
		log:      log.With().Str("usecase", "return_sale").Logger(),
		now:      time.Now,
	}
}

// ReturnSale valida que lo devuelto (acumulado) no supere lo vendido por mercancía
// y reingresa la existencia.
func (uc *ReturnSaleUseCase) ReturnSale(ctx context.Context, userID, voucherID string, in dto.CreateReturnRequest) dto.Envelope[*dto.ReturnResult] {
	if len(in.Items) == 0 {
		return dto.Fail[*dto.ReturnResult](dto.CodeInvalidModel, "la devolución no tiene líneas")
	}
	if userID == "" {
		userID = entity.SystemUser
	}
	returnID := uuid.New().String()
	now := uc.now()

	err := uc.txRunner.RunSale(ctx, func(
		goodsRepo repository.GoodsRepository,
		voucherRepo repository.VoucherRepository,
		ledgerRepo repository.WarehouseTransactionRepository,
	) error {
		voucher, err := voucherRepo.GetByID(ctx, voucherID)
		if err != nil {
			return fmt.Errorf("obtener comprobante: %w", err)
		}
		if voucher == nil {
			return domain.ErrNotFound
		}

		sold := make(map[string]decimal.Decimal)
		warehouseOf := make(map[string]string)
		for _, l := range voucher.Lines {
			sold[l.GoodsID] = sold[l.GoodsID].Add(l.Quantity)
			if _, ok := warehouseOf[l.GoodsID]; !ok {
				warehouseOf[l.GoodsID] = l.WarehouseID
			}
		}

		pending := make(map[string]decimal.Decimal)
		for _, item := range in.Items {
			qtySold, ok := sold[item.GoodsID]
			if !ok {
				return fmt.Errorf("%w: la mercancía %s no está en el comprobante", domain.ErrInvalidInput, item.GoodsID)
			}
			// El bloqueo de la fila serializa devoluciones concurrentes de la misma mercancía.
			g, err := goodsRepo.GetForUpdate(ctx, item.GoodsID)
			if err != nil {
				return err
			}
			if g == nil {
				return &domain.StockError{Err: domain.ErrItemNotFound, GoodsID: item.GoodsID}
			}
			returned, err := ledgerRepo.ReturnedQuantity(ctx, voucherID, item.GoodsID)
			if err != nil {
				return err
			}
			total := returned.Add(pending[item.GoodsID]).Add(item.Quantity)
			if total.GreaterThan(qtySold) {
				return fmt.Errorf("%w: %s vendido %s, devuelto %s",
					domain.ErrReturnExceedsSold, g.Name, qtySold.String(), total.String())
			}
			pending[item.GoodsID] = pending[item.GoodsID].Add(item.Quantity)

			if !uc.cfg.DeductStock {
				continue
			}
			if err := goodsRepo.AdjustOnHand(ctx, item.GoodsID, item.Quantity); err != nil {
				return err
			}
			warehouseID := item.WarehouseID
			if warehouseID == "" {
				warehouseID = warehouseOf[item.GoodsID]
			}
			if err := ledgerRepo.Create(ctx, &entity.WarehouseTransaction{
				ID:          uuid.New().String(),
				Reference:   voucherID,
				GoodsID:     item.GoodsID,
				WarehouseID: warehouseID,
				Type:        entity.MovementTypeRETURN,
				Quantity:    item.Quantity,
				Note:        in.Reason,
				Date:        now,
				CreatedAt:   now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		env := dto.FromError[*dto.ReturnResult](err)
		uc.log.Warn().Err(err).Str("voucher_id", voucherID).Str("code", env.ResponseCode).Msg("devolución rechazada")
		return env
	}

	uc.log.Info().Str("voucher_id", voucherID).Str("return_id", returnID).Int("lines", len(in.Items)).Msg("devolución registrada")
	return dto.Success(&dto.ReturnResult{
		ReturnID:  returnID,
		VoucherID: voucherID,
		LineCount: len(in.Items),
	}, "devolución registrada")
}
