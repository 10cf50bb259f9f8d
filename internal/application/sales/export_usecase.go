package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// ExportUseCase genera las representaciones descargables (PDF, XML) de un comprobante.
type ExportUseCase struct {
	query *VoucherQueryUseCase
	pdf   VoucherPDFGenerator
	xml   VoucherXMLExporter
}

func NewExportUseCase(voucherRepo repository.VoucherRepository, pdf VoucherPDFGenerator, xml VoucherXMLExporter) *ExportUseCase {
	return &ExportUseCase{
		query: NewVoucherQueryUseCase(voucherRepo),
		pdf:   pdf,
		xml:   xml,
	}
}

// VoucherPDF devuelve (bytes, nombre de archivo). domain.ErrNotFound si el comprobante no existe.
func (uc *ExportUseCase) VoucherPDF(ctx context.Context, voucherID string) ([]byte, string, error) {
	v, err := uc.query.load(ctx, voucherID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateVoucherPDF(ctx, v)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("comprobante_%s.pdf", v.ID), nil
}

// VoucherXML devuelve el documento XML canónico del comprobante.
func (uc *ExportUseCase) VoucherXML(ctx context.Context, voucherID string) ([]byte, string, error) {
	v, err := uc.query.load(ctx, voucherID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.ExportVoucherXML(v)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return b, fmt.Sprintf("comprobante_%s.xml", v.ID), nil
}
