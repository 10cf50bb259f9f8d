package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// GoodsUseCase casos de uso CRUD para mercancías. OnHand solo cambia vía movimientos y ventas.
type GoodsUseCase struct {
	repo repository.GoodsRepository
}

// NewGoodsUseCase construye el caso de uso.
func NewGoodsUseCase(repo repository.GoodsRepository) *GoodsUseCase {
	return &GoodsUseCase{repo: repo}
}

// Create crea una mercancía con su existencia inicial. Id repetido = ErrDuplicate.
func (uc *GoodsUseCase) Create(ctx context.Context, in dto.CreateGoodsRequest) (*dto.GoodsResponse, error) {
	if in.OnHand.IsNegative() || in.SalePrice.IsNegative() || in.VATRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	goods := &entity.Goods{
		ID:        in.ID,
		Name:      in.Name,
		Unit:      in.Unit,
		SalePrice: in.SalePrice,
		VATRate:   in.VATRate,
		OnHand:    in.OnHand,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, goods); err != nil {
		return nil, err
	}
	return toGoodsResponse(goods), nil
}

// GetByID obtiene una mercancía por ID.
func (uc *GoodsUseCase) GetByID(ctx context.Context, id string) (*dto.GoodsResponse, error) {
	goods, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goods == nil {
		return nil, domain.ErrNotFound
	}
	return toGoodsResponse(goods), nil
}

// Update actualiza datos maestros. No permite modificar OnHand.
func (uc *GoodsUseCase) Update(ctx context.Context, id string, in dto.UpdateGoodsRequest) (*dto.GoodsResponse, error) {
	goods, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goods == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		goods.Name = *in.Name
	}
	if in.Unit != nil {
		goods.Unit = *in.Unit
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		goods.SalePrice = *in.SalePrice
	}
	if in.VATRate != nil {
		if in.VATRate.IsNegative() || in.VATRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		goods.VATRate = *in.VATRate
	}
	goods.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, goods); err != nil {
		return nil, err
	}
	return toGoodsResponse(goods), nil
}

// List lista mercancías filtrando por nombre o id.
func (uc *GoodsUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.GoodsListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar mercancías: %w", err)
	}
	items := make([]dto.GoodsResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toGoodsResponse(g))
	}
	return &dto.GoodsListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una mercancía. Si está referenciada por ventas el repo devuelve ErrConflict.
func (uc *GoodsUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toGoodsResponse(g *entity.Goods) *dto.GoodsResponse {
	return &dto.GoodsResponse{
		ID:        g.ID,
		Name:      g.Name,
		Unit:      g.Unit,
		SalePrice: g.SalePrice,
		VATRate:   g.VATRate,
		OnHand:    g.OnHand,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
