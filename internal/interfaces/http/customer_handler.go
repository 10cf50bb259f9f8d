package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.Envelope[dto.CustomerResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      409   {object}  dto.Envelope[any]
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, out, "cliente creado")
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Envelope[dto.CustomerResponse]
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope[[]dto.CustomerResponse]
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}
