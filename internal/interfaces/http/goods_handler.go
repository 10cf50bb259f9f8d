package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
)

// GoodsHandler CRUD del maestro de mercancías.
type GoodsHandler struct {
	uc *usecase.GoodsUseCase
}

// NewGoodsHandler construye el handler.
func NewGoodsHandler(uc *usecase.GoodsUseCase) *GoodsHandler {
	return &GoodsHandler{uc: uc}
}

// Create godoc
// @Summary      Crear mercancía
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsRequest  true  "Datos de la mercancía"
// @Success      201   {object}  dto.Envelope[dto.GoodsResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      409   {object}  dto.Envelope[any]
// @Router       /api/goods [post]
func (h *GoodsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodsRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, out, "mercancía creada")
}

// GetByID godoc
// @Summary      Obtener mercancía por ID
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la mercancía"
// @Success      200  {object}  dto.Envelope[dto.GoodsResponse]
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/goods/{id} [get]
func (h *GoodsHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// List godoc
// @Summary      Listar mercancías
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca por id o nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope[dto.GoodsListResponse]
// @Router       /api/goods [get]
func (h *GoodsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Update godoc
// @Summary      Actualizar mercancía
// @Description  La existencia no se edita aquí; usar movimientos de inventario.
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la mercancía"
// @Param        body  body  dto.UpdateGoodsRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope[dto.GoodsResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      404   {object}  dto.Envelope[any]
// @Router       /api/goods/{id} [put]
func (h *GoodsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGoodsRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "mercancía actualizada")
}

// Delete godoc
// @Summary      Eliminar mercancía
// @Description  Falla con CONFLICT si ya tiene ventas o movimientos.
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la mercancía"
// @Success      200  {object}  dto.Envelope[any]
// @Failure      404  {object}  dto.Envelope[any]
// @Failure      409  {object}  dto.Envelope[any]
// @Router       /api/goods/{id} [delete]
func (h *GoodsHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return success[any](c, nil, "mercancía eliminada")
}
