package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Roles del sistema.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, dto.CodeMissingToken, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, dto.CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, dto.CodeMissingToken, "token vacío")
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, dto.CodeInvalidToken, "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Va después de AuthMiddleware.
// Un token sin rol es 401 MISSING_ROLE; un rol no permitido es 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, dto.CodeMissingRole, "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return fail(c, dto.CodeForbidden, "el rol '"+role+"' no tiene acceso a este recurso")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
