package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0,00", money(decimal.Zero))
	assert.Equal(t, "$25.000,00", money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.234.567,50", money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$999,99", money(decimal.RequireFromString("-999.99")))
}

func TestGenerateVoucherPDF(t *testing.T) {
	v := &entity.Voucher{
		ID:           "V1",
		CustomerName: "Ferretería Central",
		VoucherDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:    "U1",
		Lines: []*entity.VoucherLine{{
			LineNo: 1, GoodsID: "G1", GoodsName: "Tornillo", Unit: "UND",
			Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(1000),
			Amount: decimal.NewFromInt(2000), VATRate: decimal.NewFromInt(19), VATAmount: decimal.NewFromInt(380),
		}},
	}

	b, err := NewMarotoPDFGenerator("Ferretería Demo").GenerateVoucherPDF(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
