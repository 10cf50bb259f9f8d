// Package csvimport carga el maestro de mercancías desde archivos CSV exportados
// por hojas de cálculo (normalmente en Latin-1 y separados por punto y coma).
package csvimport

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// Encodings soportados por Reader.
const (
	EncodingUTF8    = "utf-8"
	EncodingLatin1  = "latin1"
	EncodingWindows = "windows-1252"
)

var ErrMissingColumn = errors.New("csvimport: falta una columna obligatoria")

// GoodsUpserter es lo único que el importador necesita del repositorio.
type GoodsUpserter interface {
	Upsert(ctx context.Context, goods *entity.Goods) error
}

// RowError describe una fila descartada.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Result resumen de una importación.
type Result struct {
	Imported int
	Rejected []RowError
}

// alias de cabecera -> columna canónica
var headerAliases = map[string]string{
	"id": "id", "codigo": "id", "código": "id",
	"nombre": "name", "name": "name", "descripcion": "name", "descripción": "name",
	"unidad": "unit", "unit": "unit", "und": "unit",
	"precio": "price", "price": "price", "precio_venta": "price",
	"iva": "vat", "vat": "vat",
	"existencia": "on_hand", "on_hand": "on_hand", "stock": "on_hand", "cantidad": "on_hand",
}

// Reader envuelve r para decodificar el encoding indicado a UTF-8.
func Reader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("csvimport: encoding no soportado %q", encoding)
}

// ParseGoods lee el CSV completo. Las filas inválidas se devuelven en rejected
// y no detienen la lectura; un error de cabecera sí.
func ParseGoods(r io.Reader, encoding string) (goods []*entity.Goods, rejected []RowError, err error) {
	dec, err := Reader(r, encoding)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(dec)
	// BOM de Excel
	if bom, _ := br.Peek(3); string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectComma(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("csvimport: leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if c, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[c] = i
		}
	}
	for _, req := range []string{"id", "name", "price"} {
		if _, ok := cols[req]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rejected = append(rejected, RowError{Line: line, Err: err})
			continue
		}
		g, err := toGoods(rec, cols)
		if err != nil {
			rejected = append(rejected, RowError{Line: line, Err: err})
			continue
		}
		goods = append(goods, g)
	}
	return goods, rejected, nil
}

// Import parsea y hace upsert fila por fila. Un fallo del repositorio aborta.
func Import(ctx context.Context, repo GoodsUpserter, r io.Reader, encoding string, log zerolog.Logger) (*Result, error) {
	goods, rejected, err := ParseGoods(r, encoding)
	if err != nil {
		return nil, err
	}
	res := &Result{Rejected: rejected}
	for _, g := range goods {
		if err := repo.Upsert(ctx, g); err != nil {
			return res, fmt.Errorf("upsert %s: %w", g.ID, err)
		}
		res.Imported++
	}
	for _, re := range rejected {
		log.Warn().Int("line", re.Line).Err(re.Err).Msg("fila descartada")
	}
	log.Info().Int("imported", res.Imported).Int("rejected", len(rejected)).Msg("importación de mercancías terminada")
	return res, nil
}

func toGoods(rec []string, cols map[string]int) (*entity.Goods, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	id := field("id")
	if id == "" {
		return nil, errors.New("id vacío")
	}
	name := field("name")
	if name == "" {
		return nil, errors.New("nombre vacío")
	}
	price, err := parseDecimal(field("price"))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("precio inválido %q", field("price"))
	}
	vat, err := parseDecimal(field("vat"))
	if err != nil || vat.IsNegative() || vat.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("iva inválido %q", field("vat"))
	}
	onHand, err := parseDecimal(field("on_hand"))
	if err != nil || onHand.IsNegative() {
		return nil, fmt.Errorf("existencia inválida %q", field("on_hand"))
	}
	unit := field("unit")
	if unit == "" {
		unit = "und"
	}
	now := time.Now()
	return &entity.Goods{
		ID:        id,
		Name:      name,
		Unit:      unit,
		SalePrice: price,
		VATRate:   vat,
		OnHand:    onHand,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// parseDecimal acepta "1234.5", "1234,5" y "1.234,5". Vacío es cero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// detectComma mira la primera línea: si tiene más ';' que ',' usa ';'.
func detectComma(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(peek), '\n'); i >= 0 {
		peek = peek[:i]
	}
	if strings.Count(string(peek), ";") > strings.Count(string(peek), ",") {
		return ';'
	}
	return ','
}
