package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

type stubPDF struct{ called string }

func (s *stubPDF) GenerateVoucherPDF(_ context.Context, v *entity.Voucher) ([]byte, error) {
	s.called = v.ID
	return []byte("%PDF-1.4"), nil
}

type stubXML struct{}

func (stubXML) ExportVoucherXML(v *entity.Voucher) ([]byte, error) {
	return []byte("<Voucher id=\"" + v.ID + "\"/>"), nil
}

func TestVoucherQuery_GetByID_ConLineas(t *testing.T) {
	store := soldStore(t)
	uc := sales.NewVoucherQueryUseCase(&memVouchers{store})

	out, err := uc.GetByID(context.Background(), "V1")
	require.NoError(t, err)
	assert.Equal(t, "V1", out.ID)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "G1", out.Lines[0].GoodsID)

	_, err = uc.GetByID(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVoucherQuery_List_RangoInvalido(t *testing.T) {
	uc := sales.NewVoucherQueryUseCase(&memVouchers{newMemStore()})
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := uc.List(context.Background(), &from, &to, dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestVoucherQuery_List_SinLineas(t *testing.T) {
	store := soldStore(t)
	uc := sales.NewVoucherQueryUseCase(&memVouchers{store})

	out, err := uc.List(context.Background(), nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Empty(t, out.Items[0].Lines)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestExport_PDFyXML(t *testing.T) {
	store := soldStore(t)
	pdf := &stubPDF{}
	uc := sales.NewExportUseCase(&memVouchers{store}, pdf, stubXML{})

	b, name, err := uc.VoucherPDF(context.Background(), "V1")
	require.NoError(t, err)
	assert.Equal(t, "comprobante_V1.pdf", name)
	assert.Equal(t, "V1", pdf.called)
	assert.NotEmpty(t, b)

	x, name, err := uc.VoucherXML(context.Background(), "V1")
	require.NoError(t, err)
	assert.Equal(t, "comprobante_V1.xml", name)
	assert.Contains(t, string(x), "V1")

	_, _, err = uc.VoucherPDF(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
