package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.Envelope[dto.LoginResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      401   {object}  dto.Envelope[any]
// @Failure      403   {object}  dto.Envelope[any]
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Me godoc
// @Summary      Identidad del token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope[map[string]string]
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return success(c, map[string]string{"userId": GetUserID(c), "role": GetRole(c)}, "")
}
