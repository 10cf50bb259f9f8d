package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/inventario-ventas/pkg/taxid"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. TaxCode repetido lo detecta el repo (ErrDuplicate).
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	taxCode, err := taxid.Normalize(in.TaxCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxCode:   taxCode,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		TaxCode: c.TaxCode,
		Address: c.Address,
		Email:   c.Email,
		Phone:   c.Phone,
	}
}
