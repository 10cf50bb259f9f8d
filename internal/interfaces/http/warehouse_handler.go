package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.Envelope[dto.WarehouseResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      409   {object}  dto.Envelope[any]
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, out, "bodega creada")
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.Envelope[dto.WarehouseResponse]
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope[dto.WarehouseResponse]
// @Failure      404   {object}  dto.Envelope[any]
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "bodega actualizada")
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope[dto.WarehouseListResponse]
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}
