package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
)

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, nombre y rol"
// @Success      201   {object}  dto.Envelope[dto.UserResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      409   {object}  dto.Envelope[any]
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, out, "usuario creado")
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope[dto.UserResponse]
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope[dto.UserResponse]
// @Failure      404   {object}  dto.Envelope[any]
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "usuario actualizado")
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope[dto.UserListResponse]
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope[any]
// @Failure      403  {object}  dto.Envelope[any]  "no se puede eliminar a sí mismo"
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return success[any](c, nil, "usuario eliminado")
}
