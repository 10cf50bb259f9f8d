package xmlexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

func sampleVoucher() *entity.Voucher {
	return &entity.Voucher{
		ID:           "V1",
		CustomerName: "Ferretería & Cía",
		VoucherDate:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CreatedBy:    "U1",
		Lines: []*entity.VoucherLine{{
			LineNo: 1, GoodsID: "G1", GoodsName: "Tornillo <1/2>", Unit: "UND",
			Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(1000),
			Amount: decimal.NewFromInt(2000), VATRate: decimal.NewFromInt(19), VATAmount: decimal.NewFromInt(380),
			DebitAccount: "131", CreditAccount: "5111",
		}},
	}
}

func TestExportVoucherXML_EstructuraYTotales(t *testing.T) {
	out, err := NewExporter().ExportVoucherXML(sampleVoucher())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "V1", root.SelectAttrValue("id", ""))
	assert.Equal(t, "2380.00", root.FindElement("./Totals/Total").Text())
	assert.Equal(t, "Tornillo <1/2>", root.FindElement("./Lines/Line/GoodsName").Text())
	assert.NotEmpty(t, root.FindElement("./Integrity").Text())
}

func TestExportVoucherXML_Determinista(t *testing.T) {
	a, err := NewExporter().ExportVoucherXML(sampleVoucher())
	require.NoError(t, err)
	b, err := NewExporter().ExportVoucherXML(sampleVoucher())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestVerify_DetectaAlteracion(t *testing.T) {
	out, err := NewExporter().ExportVoucherXML(sampleVoucher())
	require.NoError(t, err)
	require.NoError(t, Verify(out))

	tampered := bytes.Replace(out, []byte("2380.00"), []byte("1380.00"), 1)
	assert.ErrorIs(t, Verify(tampered), ErrDigestMismatch)
}
