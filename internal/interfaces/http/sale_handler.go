package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain"
)

// SaleHandler expone el flujo de venta: registrar, consultar, exportar y devolver.
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	query   *sales.VoucherQueryUseCase
	returns *sales.ReturnSaleUseCase
	export  *sales.ExportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	create *sales.CreateSaleUseCase,
	query *sales.VoucherQueryUseCase,
	returns *sales.ReturnSaleUseCase,
	export *sales.ExportUseCase,
) *SaleHandler {
	return &SaleHandler{create: create, query: query, returns: returns, export: export}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida existencias línea por línea y guarda el comprobante en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.CreateSaleRequest  true   "Comprobante y líneas"
// @Success      200  {object}  dto.Envelope[dto.SaleResult]
// @Failure      400  {object}  dto.Envelope[any]  "INVALID_MODEL, OUT_OF_STOCK o NOT_ENOUGH_STOCK"
// @Failure      404  {object}  dto.Envelope[any]  "ITEM_NOT_FOUND"
// @Failure      409  {object}  dto.Envelope[any]
// @Failure      500  {object}  dto.Envelope[any]  "EXCEPTION"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	return respond(c, h.create.CreateSale(c.UserContext(), GetUserID(c), in))
}

// GetByID godoc
// @Summary      Obtener comprobante con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.Envelope[dto.VoucherResponse]
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// List godoc
// @Summary      Listar comprobantes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope[dto.VoucherListResponse]
// @Failure      400     {object}  dto.Envelope[any]
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from", false)
	if err != nil {
		return fail(c, dto.CodeInvalidModel, err.Error())
	}
	to, err := parseDateQuery(c, "to", true)
	if err != nil {
		return fail(c, dto.CodeInvalidModel, err.Error())
	}
	out, err := h.query.List(c.UserContext(), from, to, pageFromQuery(c))
	if err != nil {
		return respondErr(c, err)
	}
	return success(c, out, "")
}

// PDF godoc
// @Summary      Descargar comprobante en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.export.VoucherPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(data)
}

// XML godoc
// @Summary      Descargar comprobante en XML canónico
// @Tags         sales
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope[any]
// @Router       /api/sales/{id}/xml [get]
func (h *SaleHandler) XML(c *fiber.Ctx) error {
	data, filename, err := h.export.VoucherXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Attachment(filename)
	return c.Send(data)
}

// Return godoc
// @Summary      Registrar devolución de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del comprobante"
// @Param        body  body  dto.CreateReturnRequest  true  "Mercancías devueltas"
// @Success      200   {object}  dto.Envelope[dto.ReturnResult]
// @Failure      400   {object}  dto.Envelope[any]  "INVALID_MODEL o RETURN_EXCEEDS_SOLD"
// @Failure      404   {object}  dto.Envelope[any]
// @Router       /api/sales/{id}/returns [post]
func (h *SaleHandler) Return(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if handled, err := bindJSON(c, &in); handled {
		return err
	}
	return respond(c, h.returns.ReturnSale(c.UserContext(), GetUserID(c), c.Params("id"), in))
}

// parseDateQuery acepta RFC3339 o YYYY-MM-DD. Para endOfDay una fecha sin hora
// se interpreta como el final de ese día.
func parseDateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339 o YYYY-MM-DD", domain.ErrInvalidInput, name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
