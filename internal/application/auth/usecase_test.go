package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	pkgjwt "github.com/jhoicas/inventario-ventas/pkg/jwt"
)

type stubUsers struct {
	repository.UserRepository
	user *entity.User
}

func (s stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

func newAuth(t *testing.T, status string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID: "U1", Email: "ana@ferre.co", PasswordHash: string(hash),
		Name: "Ana", Role: entity.RoleVendedor, Status: status,
	}
	return auth.NewAuthUseCase(stubUsers{user: user}, auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_OK_TokenConRol(t *testing.T) {
	out, err := newAuth(t, entity.UserStatusActive).Login(context.Background(), dto.LoginRequest{Email: "ANA@ferre.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "U1", out.User.ID)

	userID, role, err := pkgjwt.Parse("s", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@ferre.co", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@ferre.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo_Forbidden(t *testing.T) {
	_, err := newAuth(t, entity.UserStatusInactive).Login(context.Background(), dto.LoginRequest{Email: "ana@ferre.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
