package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

func TestUser_CreateHasheaYNormalizaEmail(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{Email: " Ana@Ferre.co ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@ferre.co", out.Email)
	assert.Equal(t, entity.RoleVendedor, out.Role)
	assert.Equal(t, entity.UserStatusActive, out.Status)

	stored := repo.items[out.ID]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Email: "ana@ferre.co", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUser_UpdateRolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())
	u, err := uc.Create(context.Background(), dto.CreateUserRequest{Email: "b@x.co", Password: "secreto123", Role: entity.RoleBodeguero})
	require.NoError(t, err)

	bad := "gerente"
	_, err = uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	status := entity.UserStatusSuspended
	out, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, out.Status)
}

func TestUser_DeleteASiMismo_Forbidden(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())
	assert.ErrorIs(t, uc.Delete(context.Background(), "U1", "U1"), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(context.Background(), "U1", "U2"))
}

func TestUser_GetByIDInexistente(t *testing.T) {
	_, err := usecase.NewUserUseCase(newMemUserRepo()).GetByID(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
