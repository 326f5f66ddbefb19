// Package facturae construye el XML Facturae 3.2.2 de una factura emitida
// (sin firma XAdES; el fichero resultante se puede firmar con AutoFirma).
package facturae

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// Namespaces del esquema Facturae 3.2.2.
const (
	nsFacturae = "http://www.facturae.es/Facturae/2014/v3.2.1/Facturae"
	nsDs       = "http://www.w3.org/2000/09/xmldsig#"

	schemaVersion = "3.2.2"
	dateLayout    = "2006-01-02"
)

// XMLBuilderService construye el documento Facturae de un apunte INCOME.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el []byte del documento. Solo las facturas emitidas (INCOME)
// tienen representación Facturae: el profesional es el emisor.
func (s *XMLBuilderService) Build(record *entity.FiscalRecord, professional *entity.Professional) ([]byte, error) {
	if record == nil || professional == nil {
		return nil, fmt.Errorf("facturae: faltan apunte o perfil del profesional")
	}
	if record.Kind != entity.KindIncome {
		return nil, fmt.Errorf("facturae: solo las facturas emitidas tienen representación Facturae")
	}
	if professional.TaxID == "" {
		return nil, fmt.Errorf("facturae: el perfil del profesional no tiene NIF")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("fe:Facturae")
	root.CreateAttr("xmlns:fe", nsFacturae)
	root.CreateAttr("xmlns:ds", nsDs)

	s.writeFileHeader(root, record)
	s.writeParties(root, record, professional)
	s.writeInvoice(root, record)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("facturae: serializar documento: %w", err)
	}
	return out, nil
}

// writeFileHeader cabecera del lote: una única factura por fichero.
func (s *XMLBuilderService) writeFileHeader(root *etree.Element, record *entity.FiscalRecord) {
	header := root.CreateElement("FileHeader")
	header.CreateElement("SchemaVersion").SetText(schemaVersion)
	header.CreateElement("Modality").SetText("I") // individual
	header.CreateElement("InvoiceIssuerType").SetText("EM")

	batch := header.CreateElement("Batch")
	batch.CreateElement("BatchIdentifier").SetText(record.DocumentNumber)
	batch.CreateElement("InvoicesCount").SetText("1")
	writeAmount(batch.CreateElement("TotalInvoicesAmount"), record.TotalAmount)
	writeAmount(batch.CreateElement("TotalOutstandingAmount"), record.TotalAmount)
	writeAmount(batch.CreateElement("TotalExecutableAmount"), record.TotalAmount)
	batch.CreateElement("InvoiceCurrencyCode").SetText("EUR")
}

// writeParties emisor (el profesional) y receptor (la contraparte del apunte).
func (s *XMLBuilderService) writeParties(root *etree.Element, record *entity.FiscalRecord, professional *entity.Professional) {
	parties := root.CreateElement("Parties")

	seller := parties.CreateElement("SellerParty")
	sellerTax := seller.CreateElement("TaxIdentification")
	sellerTax.CreateElement("PersonTypeCode").SetText("F") // persona física
	sellerTax.CreateElement("ResidenceTypeCode").SetText("R")
	sellerTax.CreateElement("TaxIdentificationNumber").SetText(professional.TaxID)
	individual := seller.CreateElement("Individual")
	writePersonName(individual, professional.Name)
	address := individual.CreateElement("AddressInSpain")
	address.CreateElement("Address").SetText(nonEmpty(professional.Address, "—"))
	address.CreateElement("PostCode").SetText(nonEmpty(professional.PostalCode, "00000"))
	address.CreateElement("Town").SetText(nonEmpty(professional.City, "—"))
	address.CreateElement("Province").SetText(nonEmpty(professional.Province, "—"))
	address.CreateElement("CountryCode").SetText("ESP")

	buyer := parties.CreateElement("BuyerParty")
	buyerTax := buyer.CreateElement("TaxIdentification")
	buyerTax.CreateElement("PersonTypeCode").SetText("J")
	buyerTax.CreateElement("ResidenceTypeCode").SetText("R")
	buyerTax.CreateElement("TaxIdentificationNumber").SetText(record.CounterpartyTaxID)
	legal := buyer.CreateElement("LegalEntity")
	legal.CreateElement("CorporateName").SetText(record.CounterpartyName)
	if record.CounterpartyAddress != "" {
		buyerAddr := legal.CreateElement("AddressInSpain")
		buyerAddr.CreateElement("Address").SetText(record.CounterpartyAddress)
		buyerAddr.CreateElement("PostCode").SetText("00000")
		buyerAddr.CreateElement("Town").SetText("—")
		buyerAddr.CreateElement("Province").SetText("—")
		buyerAddr.CreateElement("CountryCode").SetText("ESP")
	}
}

// writeInvoice la factura en sí: importes, impuestos y una línea única con la
// base completa (el libro no conserva el detalle por líneas).
func (s *XMLBuilderService) writeInvoice(root *etree.Element, record *entity.FiscalRecord) {
	invoices := root.CreateElement("Invoices")
	inv := invoices.CreateElement("Invoice")

	header := inv.CreateElement("InvoiceHeader")
	header.CreateElement("InvoiceNumber").SetText(record.DocumentNumber)
	header.CreateElement("InvoiceDocumentType").SetText("FC")
	header.CreateElement("InvoiceClass").SetText("OO")

	issue := inv.CreateElement("InvoiceIssueData")
	issue.CreateElement("IssueDate").SetText(record.IssueDate.Format(dateLayout))
	issue.CreateElement("InvoiceCurrencyCode").SetText("EUR")
	issue.CreateElement("TaxCurrencyCode").SetText("EUR")
	issue.CreateElement("LanguageName").SetText("es")

	taxes := inv.CreateElement("TaxesOutputs")
	tax := taxes.CreateElement("Tax")
	tax.CreateElement("TaxTypeCode").SetText("01") // IVA
	tax.CreateElement("TaxRate").SetText(record.VATRate.StringFixed(2))
	writeAmount(tax.CreateElement("TaxableBase"), record.TaxBase)
	writeAmount(tax.CreateElement("TaxAmount"), record.VATAmount)

	if record.WithholdingAmount.IsPositive() {
		withheld := inv.CreateElement("TaxesWithheld")
		w := withheld.CreateElement("Tax")
		w.CreateElement("TaxTypeCode").SetText("04") // IRPF
		w.CreateElement("TaxRate").SetText(record.WithholdingRate.StringFixed(2))
		writeAmount(w.CreateElement("TaxableBase"), record.TaxBase)
		writeAmount(w.CreateElement("TaxAmount"), record.WithholdingAmount)
	}

	totals := inv.CreateElement("InvoiceTotals")
	totals.CreateElement("TotalGrossAmount").SetText(record.TaxBase.StringFixed(2))
	totals.CreateElement("TotalGrossAmountBeforeTaxes").SetText(record.TaxBase.StringFixed(2))
	totals.CreateElement("TotalTaxOutputs").SetText(record.VATAmount.StringFixed(2))
	totals.CreateElement("TotalTaxesWithheld").SetText(record.WithholdingAmount.StringFixed(2))
	totals.CreateElement("InvoiceTotal").SetText(record.TotalAmount.StringFixed(2))
	totals.CreateElement("TotalOutstandingAmount").SetText(record.TotalAmount.StringFixed(2))
	totals.CreateElement("TotalExecutableAmount").SetText(record.TotalAmount.StringFixed(2))

	items := inv.CreateElement("Items")
	line := items.CreateElement("InvoiceLine")
	line.CreateElement("ItemDescription").SetText(lineDescription(record))
	line.CreateElement("Quantity").SetText("1")
	line.CreateElement("UnitPriceWithoutTax").SetText(record.TaxBase.StringFixed(2))
	line.CreateElement("TotalCost").SetText(record.TaxBase.StringFixed(2))
	line.CreateElement("GrossAmount").SetText(record.TaxBase.StringFixed(2))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func writeAmount(parent *etree.Element, d decimal.Decimal) {
	parent.CreateElement("TotalAmount").SetText(d.StringFixed(2))
}

// writePersonName parte el nombre completo en Name + FirstSurname, que el
// esquema exige por separado.
func writePersonName(individual *etree.Element, fullName string) {
	name, surname := fullName, "—"
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		name, surname = fullName[:i], fullName[i+1:]
	}
	individual.CreateElement("Name").SetText(nonEmpty(name, "—"))
	individual.CreateElement("FirstSurname").SetText(surname)
}

func lineDescription(record *entity.FiscalRecord) string {
	if record.IncomeCategory != "" {
		return record.IncomeCategory
	}
	return "Servicios profesionales"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
