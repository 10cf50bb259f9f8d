package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/inventory"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// CreateSaleUseCase valida existencias y registra el comprobante de venta en una sola transacción.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	cfg          Config
	log          zerolog.Logger
	now          func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	cfg Config,
	log zerolog.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		cfg:          cfg,
		log:          log.With().Str("usecase", "create_sale").Logger(),
		now:          time.Now,
	}
}

// CreateSale chequea cada línea en orden (la primera que falla aborta todo), arma cabecera
// y líneas y las persiste juntas. Siempre devuelve un envelope; nunca propaga errores crudos.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) dto.Envelope[*dto.SaleResult] {
	if in.VoucherID == "" {
		return dto.Fail[*dto.SaleResult](dto.CodeInvalidModel, "voucherId es requerido")
	}
	if userID == "" {
		userID = entity.SystemUser
	}
	if err := uc.fillCustomer(ctx, &in); err != nil {
		return dto.FromError[*dto.SaleResult](err)
	}

	now := uc.now()
	var voucher *entity.Voucher
	var affected int64

	err := uc.txRunner.RunSale(ctx, func(
		goodsRepo repository.GoodsRepository,
		voucherRepo repository.VoucherRepository,
		ledgerRepo repository.WarehouseTransactionRepository,
	) error {
		// 1) Bloqueo (SELECT FOR UPDATE) en orden de id para que dos ventas con las mismas
		// mercancías no se crucen; el chequeo va después en el orden de la petición.
		locked, err := lockGoods(ctx, goodsRepo, in.Items)
		if err != nil {
			return err
		}
		for i, item := range in.Items {
			g := locked[item.GoodsID]
			if err := inventory.CheckAvailability(item.GoodsID, g, item.Quantity, i+1); err != nil {
				return err
			}
			if uc.cfg.DeductStock {
				// Las líneas repetidas de la misma mercancía se validan contra lo que queda.
				g.OnHand = g.OnHand.Sub(item.Quantity)
			}
		}

		// 2) Cabecera + líneas en la misma tx.
		voucher = uc.buildVoucher(in, userID, now, locked)
		n, err := voucherRepo.Create(ctx, voucher)
		if err != nil {
			return err
		}
		affected = n

		if !uc.cfg.DeductStock {
			return nil
		}
		// 3) Descuento de existencia (compare-and-set) y asiento en el libro de bodega.
		for _, line := range voucher.Lines {
			if err := goodsRepo.AdjustOnHand(ctx, line.GoodsID, line.Quantity.Neg()); err != nil {
				return err
			}
			if err := ledgerRepo.Create(ctx, &entity.WarehouseTransaction{
				ID:          uuid.New().String(),
				Reference:   voucher.ID,
				GoodsID:     line.GoodsID,
				WarehouseID: line.WarehouseID,
				Type:        entity.MovementTypeSALE,
				Quantity:    line.Quantity.Neg(),
				Date:        voucher.VoucherDate,
				CreatedAt:   now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		env := dto.FromError[*dto.SaleResult](err)
		uc.logFailure(in.VoucherID, env, err)
		return env
	}

	uc.log.Info().
		Str("voucher_id", voucher.ID).
		Str("user_id", userID).
		Int("lines", len(voucher.Lines)).
		Int64("affected_rows", affected).
		Msg("venta registrada")

	return dto.Success(&dto.SaleResult{
		VoucherID:    voucher.ID,
		AffectedRows: affected,
		LineCount:    len(voucher.Lines),
		Total:        voucher.Total(),
	}, "venta registrada")
}

// lockGoods bloquea cada mercancía distinta una sola vez, en orden ascendente de id.
// Las inexistentes no quedan en el mapa; el chequeo en orden decide el error.
func lockGoods(ctx context.Context, goodsRepo repository.GoodsRepository, items []dto.SaleItemRequest) (map[string]*entity.Goods, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.GoodsID]; ok {
			continue
		}
		seen[item.GoodsID] = struct{}{}
		ids = append(ids, item.GoodsID)
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Goods, len(ids))
	for _, id := range ids {
		g, err := goodsRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if g != nil {
			locked[id] = g
		}
	}
	return locked, nil
}

func (uc *CreateSaleUseCase) fillCustomer(ctx context.Context, in *dto.CreateSaleRequest) error {
	if in.CustomerID == "" || uc.customerRepo == nil {
		return nil
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if in.CustomerName == "" {
		in.CustomerName = customer.Name
	}
	if in.CustomerTaxCode == "" {
		in.CustomerTaxCode = customer.TaxCode
	}
	if in.CustomerAddress == "" {
		in.CustomerAddress = customer.Address
	}
	return nil
}

// buildVoucher mapea el request 1:1 a la entidad. Solo se completan los campos vacíos
// de presentación (nombre, unidad), cuentas por defecto e importes no enviados.
func (uc *CreateSaleUseCase) buildVoucher(in dto.CreateSaleRequest, userID string, now time.Time, goods map[string]*entity.Goods) *entity.Voucher {
	date := now
	if in.VoucherDate != nil && !in.VoucherDate.IsZero() {
		date = *in.VoucherDate
	}
	v := &entity.Voucher{
		ID:              in.VoucherID,
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerTaxCode: in.CustomerTaxCode,
		CustomerAddress: in.CustomerAddress,
		Description:     in.Description,
		VoucherDate:     date,
		BankAccount:     in.BankAccount,
		BankName:        in.BankName,
		CreatedBy:       userID,
		CreatedAt:       now,
		Lines:           make([]*entity.VoucherLine, 0, len(in.Items)),
	}
	for i, item := range in.Items {
		g := goods[item.GoodsID]
		amount, vat := inventory.LineAmount(item.Quantity, item.UnitPrice, item.VATRate)
		if item.Amount != nil {
			amount = *item.Amount
		}
		if item.VATAmount != nil {
			vat = *item.VATAmount
		}
		line := &entity.VoucherLine{
			ID:            uuid.New().String(),
			VoucherID:     v.ID,
			LineNo:        i + 1,
			GoodsID:       item.GoodsID,
			GoodsName:     nonEmpty(item.GoodsName, g.Name),
			Unit:          nonEmpty(item.Unit, g.Unit),
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Amount:        amount,
			DebitAccount:  nonEmpty(item.DebitAccount, uc.cfg.DefaultDebitAccount),
			CreditAccount: nonEmpty(item.CreditAccount, uc.cfg.DefaultCreditAccount),
			WarehouseID:   item.WarehouseID,
			Promotion:     item.Promotion,
			VATRate:       item.VATRate,
			VATAmount:     vat,
			UserID:        nonEmpty(item.UserID, userID),
			CreatedAt:     now,
		}
		if item.CreatedAt != nil && !item.CreatedAt.IsZero() {
			line.CreatedAt = *item.CreatedAt
		}
		v.Lines = append(v.Lines, line)
	}
	return v
}

func (uc *CreateSaleUseCase) logFailure(voucherID string, env dto.Envelope[*dto.SaleResult], err error) {
	var ev *zerolog.Event
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		ev = uc.log.Info().Str("goods_id", stockErr.GoodsID).Int("line", stockErr.LineNo)
	case env.ResponseCode == dto.CodeException:
		ev = uc.log.Error().Err(err)
	default:
		ev = uc.log.Warn().Err(err)
	}
	ev.Str("voucher_id", voucherID).Str("code", env.ResponseCode).Msg("venta rechazada")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
