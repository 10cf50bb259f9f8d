package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega. El código repetido lo detecta el repo (ErrDuplicate).
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(w), nil
}

// Update actualiza nombre y dirección.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Address != nil {
		w.Address = *in.Address
	}
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
