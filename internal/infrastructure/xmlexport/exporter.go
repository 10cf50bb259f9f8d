// Package xmlexport genera el documento XML contable de un comprobante con un
// digest SHA-256 sobre su forma canónica (C14N) para detectar alteraciones.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

const (
	Namespace = "urn:inventario-ventas:voucher:1"
	AlgC14N   = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"
)

// ErrDigestMismatch el contenido no corresponde al digest declarado.
var ErrDigestMismatch = errors.New("xmlexport: el digest no coincide")

var _ sales.VoucherXMLExporter = (*Exporter)(nil)

// Exporter implementa sales.VoucherXMLExporter con etree.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

// ExportVoucherXML arma <Voucher>, calcula el digest de su forma canónica y lo agrega
// como último hijo <Integrity>.
func (e *Exporter) ExportVoucherXML(v *entity.Voucher) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Voucher")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", v.ID)

	header := root.CreateElement("Header")
	addText(header, "VoucherDate", v.VoucherDate.UTC().Format(time.RFC3339))
	addText(header, "Description", v.Description)
	addText(header, "CreatedBy", v.CreatedBy)
	customer := header.CreateElement("Customer")
	if v.CustomerID != "" {
		customer.CreateAttr("id", v.CustomerID)
	}
	addText(customer, "Name", v.CustomerName)
	addText(customer, "TaxCode", v.CustomerTaxCode)
	addText(customer, "Address", v.CustomerAddress)
	if v.BankAccount != "" {
		bank := header.CreateElement("Payment")
		addText(bank, "BankAccount", v.BankAccount)
		addText(bank, "BankName", v.BankName)
	}

	lines := root.CreateElement("Lines")
	var subtotal, vat, promo decimal.Decimal
	for _, l := range v.Lines {
		el := lines.CreateElement("Line")
		el.CreateAttr("no", strconv.Itoa(l.LineNo))
		addText(el, "GoodsID", l.GoodsID)
		addText(el, "GoodsName", l.GoodsName)
		addText(el, "Unit", l.Unit)
		addText(el, "Quantity", l.Quantity.String())
		addText(el, "UnitPrice", l.UnitPrice.StringFixed(2))
		addText(el, "Amount", l.Amount.StringFixed(2))
		addText(el, "Promotion", l.Promotion.StringFixed(2))
		addText(el, "VATRate", l.VATRate.String())
		addText(el, "VATAmount", l.VATAmount.StringFixed(2))
		addText(el, "DebitAccount", l.DebitAccount)
		addText(el, "CreditAccount", l.CreditAccount)
		addText(el, "WarehouseID", l.WarehouseID)
		subtotal = subtotal.Add(l.Amount)
		vat = vat.Add(l.VATAmount)
		promo = promo.Add(l.Promotion)
	}

	totals := root.CreateElement("Totals")
	addText(totals, "Subtotal", subtotal.StringFixed(2))
	addText(totals, "VAT", vat.StringFixed(2))
	addText(totals, "Promotion", promo.StringFixed(2))
	addText(totals, "Total", v.Total().StringFixed(2))

	digest, err := digestOf(doc)
	if err != nil {
		return nil, err
	}
	integrity := root.CreateElement("Integrity")
	integrity.CreateAttr("canonicalization", AlgC14N)
	integrity.CreateAttr("digestMethod", AlgSHA256)
	integrity.SetText(digest)

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out.Bytes(), nil
}

// Verify recalcula el digest sin <Integrity> y lo compara con el declarado.
func Verify(data []byte) error {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("xmlexport: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("xmlexport: documento sin raíz")
	}
	integrity := root.SelectElement("Integrity")
	if integrity == nil {
		return fmt.Errorf("xmlexport: falta Integrity")
	}
	declared := integrity.Text()
	root.RemoveChild(integrity)

	got, err := digestOf(doc)
	if err != nil {
		return err
	}
	if got != declared {
		return ErrDigestMismatch
	}
	return nil
}

// digestOf serializa sin indentación, canonicaliza y devuelve SHA-256 en base64.
func digestOf(doc *etree.Document) (string, error) {
	flat := doc.Copy()
	flat.Unindent()
	raw, err := flat.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canon, err := canonicalizeXML(raw)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func addText(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}
