package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
}

// UpdateUserRequest cambios parciales de un usuario.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
