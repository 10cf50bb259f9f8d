package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

// InventoryHandler maneja movimientos, existencias y reposición.
type InventoryHandler struct {
	movements     *inventory.RegisterMovementUseCase
	stock         *inventory.StockQueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.RegisterMovementUseCase,
	stock *inventory.StockQueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, stock: stock, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN y OUT llevan cantidad positiva; ADJUSTMENT admite signo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "goodsId, warehouseId, type, quantity"
// @Success      201   {object}  dto.Envelope[dto.MovementResponse]
// @Failure      400   {object}  dto.Envelope[any]
// @Failure      404   {object}  dto.Envelope[any]
// @Failure      409   {object}  dto.Envelope[any]
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	out, err := h.movements.RegisterMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, out, "movimiento registrado")
}

// Stock godoc
// @Summary      Existencias por bodega según el kardex
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.Envelope[[]dto.StockSummaryResponse]
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	out, err := h.stock.StockSummary(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Movements godoc
// @Summary      Historial de movimientos de una mercancía
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        goods_id  query  string  true   "ID de la mercancía"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope[[]dto.MovementResponse]
// @Failure      400  {object}  dto.Envelope[any]
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.stock.Movements(c.UserContext(), c.Query("goods_id"), pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Mercancías por debajo del umbral, priorizadas por unidades vendidas en 90 días.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  string  false  "Umbral de existencia"  default(10)
// @Success      200  {object}  dto.Envelope[[]dto.ReplenishmentSuggestion]
// @Failure      400  {object}  dto.Envelope[any]
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	threshold, err := decimal.NewFromString(c.Query("threshold", "10"))
	if err != nil {
		return fail(c, dto.CodeInvalidModel, "threshold debe ser numérico")
	}
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), threshold)
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}
