package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/analytics"
)

// DashboardHandler KPIs de ventas.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas del día y del mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.DashboardSummary]
// @Failure      500  {object}  dto.Envelope[any]
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}
