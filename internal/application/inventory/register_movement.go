package inventory

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
	"github.com/jhoicas/inventario-ventas/internal/domain/inventory"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de bodega (IN, OUT, ADJUSTMENT)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	log           zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		log:           log.With().Str("usecase", "register_movement").Logger(),
	}
}

// RegisterMovement valida el tipo, bloquea la mercancía, ajusta la existencia y deja el asiento.
// IN y OUT exigen cantidad positiva; ADJUSTMENT acepta signo y no puede ser cero.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.GoodsID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	var delta decimal.Decimal
	switch in.Type {
	case entity.MovementTypeIN:
		if !in.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: la cantidad de una entrada debe ser mayor a cero", domain.ErrInvalidInput)
		}
		delta = in.Quantity
	case entity.MovementTypeOUT:
		if !in.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: la cantidad de una salida debe ser mayor a cero", domain.ErrInvalidInput)
		}
		delta = in.Quantity.Neg()
	case entity.MovementTypeADJUSTMENT:
		if in.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: un ajuste no puede ser cero", domain.ErrInvalidInput)
		}
		delta = in.Quantity
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}

	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("obtener bodega: %w", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if userID == "" {
		userID = entity.SystemUser
	}

	now := time.Now()
	mov := &entity.WarehouseTransaction{
		ID:          uuid.New().String(),
		GoodsID:     in.GoodsID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    delta,
		Note:        in.Note,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	mov.Reference = mov.ID

	err = uc.txRunner.Run(ctx, func(
		goodsRepo repository.GoodsRepository,
		ledgerRepo repository.WarehouseTransactionRepository,
	) error {
		g, err := goodsRepo.GetForUpdate(ctx, in.GoodsID)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		if delta.IsNegative() {
			if err := inventory.CheckAvailability(in.GoodsID, g, delta.Neg(), 1); err != nil {
				return err
			}
		}
		if err := goodsRepo.AdjustOnHand(ctx, in.GoodsID, delta); err != nil {
			return err
		}
		return ledgerRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("goods_id", mov.GoodsID).
		Str("warehouse_id", mov.WarehouseID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Msg("movimiento registrado")
	out := ToMovementResponse(mov)
	return &out, nil
}

// ToMovementResponse mapea un asiento al DTO.
func ToMovementResponse(m *entity.WarehouseTransaction) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Reference:   m.Reference,
		GoodsID:     m.GoodsID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Note:        m.Note,
		Date:        m.Date,
		CreatedBy:   m.CreatedBy,
	}
}
