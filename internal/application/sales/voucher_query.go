package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// VoucherQueryUseCase lectura de comprobantes ya registrados.
type VoucherQueryUseCase struct {
	voucherRepo repository.VoucherRepository
}

func NewVoucherQueryUseCase(voucherRepo repository.VoucherRepository) *VoucherQueryUseCase {
	return &VoucherQueryUseCase{voucherRepo: voucherRepo}
}

// GetByID devuelve el comprobante con sus líneas; domain.ErrNotFound si no existe.
func (uc *VoucherQueryUseCase) GetByID(ctx context.Context, id string) (*dto.VoucherResponse, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToVoucherResponse(v, true)
	return &out, nil
}

// List lista cabeceras en un rango de fechas opcional.
func (uc *VoucherQueryUseCase) List(ctx context.Context, from, to *time.Time, page dto.PageRequest) (*dto.VoucherListResponse, error) {
	page.DefaultPage()
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	list, err := uc.voucherRepo.List(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar comprobantes: %w", err)
	}
	items := make([]dto.VoucherResponse, 0, len(list))
	for _, v := range list {
		items = append(items, ToVoucherResponse(v, false))
	}
	return &dto.VoucherListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func (uc *VoucherQueryUseCase) load(ctx context.Context, id string) (*entity.Voucher, error) {
	v, err := uc.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener comprobante: %w", err)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// ToVoucherResponse mapea la entidad al DTO; withLines=false omite el detalle.
func ToVoucherResponse(v *entity.Voucher, withLines bool) dto.VoucherResponse {
	out := dto.VoucherResponse{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		CustomerName:    v.CustomerName,
		CustomerTaxCode: v.CustomerTaxCode,
		CustomerAddress: v.CustomerAddress,
		Description:     v.Description,
		VoucherDate:     v.VoucherDate,
		BankAccount:     v.BankAccount,
		BankName:        v.BankName,
		CreatedBy:       v.CreatedBy,
		CreatedAt:       v.CreatedAt,
		Total:           v.Total(),
	}
	if !withLines {
		return out
	}
	out.Lines = make([]dto.VoucherLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		out.Lines = append(out.Lines, dto.VoucherLineResponse{
			ID:            l.ID,
			LineNo:        l.LineNo,
			GoodsID:       l.GoodsID,
			GoodsName:     l.GoodsName,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Amount:        l.Amount,
			DebitAccount:  l.DebitAccount,
			CreditAccount: l.CreditAccount,
			WarehouseID:   l.WarehouseID,
			Promotion:     l.Promotion,
			VATRate:       l.VATRate,
			VATAmount:     l.VATAmount,
			UserID:        l.UserID,
			CreatedAt:     l.CreatedAt,
		})
	}
	return out
}
