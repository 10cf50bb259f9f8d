package csvimport_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/csvimport"
)

type recordingRepo struct {
	saved []*entity.Goods
	fail  error
}

func (r *recordingRepo) Upsert(_ context.Context, g *entity.Goods) error {
	if r.fail != nil {
		return r.fail
	}
	r.saved = append(r.saved, g)
	return nil
}

func TestParseGoods_Latin1PuntoYComa(t *testing.T) {
	src := "codigo;nombre;unidad;precio;iva;existencia\n" +
		"G-1;Café molido;kg;12.500,50;19;10\n" +
		"G-2;Azúcar;;3000;5;\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	goods, rejected, err := csvimport.ParseGoods(strings.NewReader(latin1), csvimport.EncodingLatin1)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, goods, 2)

	assert.Equal(t, "Café molido", goods[0].Name)
	assert.Equal(t, "12500.5", goods[0].SalePrice.String())
	assert.Equal(t, "19", goods[0].VATRate.String())
	assert.Equal(t, "10", goods[0].OnHand.String())

	assert.Equal(t, "Azúcar", goods[1].Name)
	assert.Equal(t, "und", goods[1].Unit)
	assert.True(t, goods[1].OnHand.IsZero())
}

func TestParseGoods_FilasInvalidasSeDescartan(t *testing.T) {
	src := "id,name,price,vat,on_hand\n" +
		"A,Arroz,2000,0,5\n" +
		",Sin id,100,0,1\n" +
		"B,Precio malo,abc,0,1\n" +
		"C,Stock negativo,10,0,-3\n"

	goods, rejected, err := csvimport.ParseGoods(strings.NewReader(src), csvimport.EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, goods, 1)
	assert.Equal(t, "A", goods[0].ID)
	require.Len(t, rejected, 3)
	assert.Equal(t, 3, rejected[0].Line)
	assert.Equal(t, 5, rejected[2].Line)
}

func TestParseGoods_FaltaColumna(t *testing.T) {
	_, _, err := csvimport.ParseGoods(strings.NewReader("id,nombre\nA,Arroz\n"), "")
	assert.ErrorIs(t, err, csvimport.ErrMissingColumn)
}

func TestParseGoods_EncodingDesconocido(t *testing.T) {
	_, _, err := csvimport.ParseGoods(strings.NewReader("id\n"), "ebcdic")
	assert.Error(t, err)
}

func TestImport_UpsertYResumen(t *testing.T) {
	repo := &recordingRepo{}
	src := "\xef\xbb\xbfid,nombre,precio\nA,Arroz,2000\nB,Frijol,3500\n,Roto,1\n"

	res, err := csvimport.Import(context.Background(), repo, strings.NewReader(src), "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Len(t, res.Rejected, 1)
	require.Len(t, repo.saved, 2)
	assert.Equal(t, "A", repo.saved[0].ID)
}

func TestImport_FalloDelRepositorioAborta(t *testing.T) {
	repo := &recordingRepo{fail: errors.New("db caída")}
	_, err := csvimport.Import(context.Background(), repo, strings.NewReader("id,nombre,precio\nA,Arroz,1\n"), "", zerolog.Nop())
	assert.ErrorContains(t, err, "db caída")
}
