package sales

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de venta atados a ella.
// Si fn devuelve error se hace Rollback: ni cabecera ni líneas quedan persistidas.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		goodsRepo repository.GoodsRepository,
		voucherRepo repository.VoucherRepository,
		ledgerRepo repository.WarehouseTransactionRepository,
	) error) error
}

// VoucherPDFGenerator genera la representación imprimible de un comprobante.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, voucher *entity.Voucher) ([]byte, error)
}

// VoucherXMLExporter genera el documento XML contable de un comprobante.
type VoucherXMLExporter interface {
	ExportVoucherXML(voucher *entity.Voucher) ([]byte, error)
}

// Config reglas configurables del flujo de venta.
type Config struct {
	// DeductStock descuenta la existencia en la misma transacción del chequeo.
	// false reproduce el comportamiento de solo validar.
	DeductStock          bool
	DefaultDebitAccount  string
	DefaultCreditAccount string
}
