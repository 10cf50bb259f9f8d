package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (administración).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create hashea la password con bcrypt y persiste. Email repetido = ErrEmailAlreadyExists.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Update aplica cambios parciales; una password nueva se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un usuario. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse mapea la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
