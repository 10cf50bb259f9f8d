// Package pdf genera el comprobante de venta imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor              │  N° Comprobante + Fecha      │
//	│  CLIENTE: Nombre + NIT + dirección                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Mercancía | Cant | Und | P.Unit | IVA | Importe  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / Descuentos / TOTAL                │
//	│  FOOTER: QR con el id del comprobante + datos de pago        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

var _ sales.VoucherPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa sales.VoucherPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer string
}

// NewMarotoPDFGenerator construye el generador; issuer se imprime en el encabezado.
func NewMarotoPDFGenerator(issuer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateVoucherPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVoucherPDF(_ context.Context, v *entity.Voucher) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta "+v.ID, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.issuer, v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(v.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(v))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(v))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(issuer string, v *entity.Voucher) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Elaborado por: "+v.CreatedBy, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(v.ID, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+v.VoucherDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(v *entity.Voucher) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(v.CustomerName, "Consumidor final"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Dirección: %s",
				nonEmpty(v.CustomerTaxCode, "-"),
				nonEmpty(v.CustomerAddress, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Mercancía", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Und", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Importe", 2, align.Right),
	)
}

func tableLineRows(lines []*entity.VoucherLine) []core.Row {
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(cell(fmt.Sprintf("%d", l.LineNo), align.Center)),
			col.New(4).Add(cell(l.GoodsName, align.Left)),
			col.New(1).Add(cell(l.Quantity.String(), align.Right)),
			col.New(1).Add(cell(l.Unit, align.Center)),
			col.New(2).Add(cell(money(l.UnitPrice), align.Right)),
			col.New(1).Add(cell(l.VATRate.String()+"%", align.Center)),
			col.New(2).Add(cell(money(l.Amount), align.Right)),
		))
	}
	return out
}

func totalsRow(v *entity.Voucher) core.Row {
	var subtotal, vat, promo decimal.Decimal
	for _, l := range v.Lines {
		subtotal = subtotal.Add(l.Amount)
		vat = vat.Add(l.VATAmount)
		promo = promo.Add(l.Promotion)
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("IVA:", 5),
			label("Descuentos:", 10),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16}),
		),
		col.New(3).Add(
			value(money(subtotal), 0),
			value(money(vat), 5),
			value("-"+money(promo), 10),
			text.New(money(v.Total()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16}),
		),
	)
}

func footerRow(v *entity.Voucher) core.Row {
	payment := "Pago de contado"
	if v.BankAccount != "" {
		payment = fmt.Sprintf("Transferencia: %s %s", nonEmpty(v.BankName, ""), v.BankAccount)
	}
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(v.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(payment, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(nonEmpty(v.Description, ""), props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con dos decimales y puntos de miles: 1234567.5 -> "$1.234.567,50".
func money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	return sign + "$" + thousands(intPart) + "," + frac
}

// thousands inserta puntos de miles en un string numérico sin decimales.
func thousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
