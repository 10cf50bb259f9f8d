package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/domain"
)

func TestCustomer_CreateNormalizaNIT(t *testing.T) {
	uc := usecase.NewCustomerUseCase(&memCustomerRepo{})

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ferretería Central", TaxCode: "900.123.456"})
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", out.TaxCode)

	// mismo NIT escrito distinto choca con el existente
	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Duplicado", TaxCode: "900123456-8"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomer_CreateNITInvalido(t *testing.T) {
	uc := usecase.NewCustomerUseCase(&memCustomerRepo{})

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "X", TaxCode: "900123456-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{TaxCode: "52345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomer_GetByIDYList(t *testing.T) {
	uc := usecase.NewCustomerUseCase(&memCustomerRepo{})
	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Cliente", TaxCode: "52345678"})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente", got.Name)

	_, err = uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
