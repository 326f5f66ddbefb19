package facturae

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

func facturaEmitida() *entity.FiscalRecord {
	return &entity.FiscalRecord{
		ID:                "id-1",
		Kind:              entity.KindIncome,
		DocumentNumber:    "A-25-1",
		IssueDate:         time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		CounterpartyTaxID: "B12345674",
		CounterpartyName:  "Cliente SL",
		TaxBase:           decimal.RequireFromString("1000"),
		VATRate:           decimal.RequireFromString("21"),
		VATAmount:         decimal.RequireFromString("210"),
		WithholdingRate:   decimal.RequireFromString("15"),
		WithholdingAmount: decimal.RequireFromString("150"),
		TotalAmount:       decimal.RequireFromString("1060"),
	}
}

func perfil() *entity.Professional {
	return &entity.Professional{
		Name:       "Ana García",
		TaxID:      "12345678Z",
		Address:    "Calle Mayor 1",
		City:       "Madrid",
		PostalCode: "28001",
		Province:   "Madrid",
	}
}

func TestBuild_EstructuraFacturae(t *testing.T) {
	out, err := NewXMLBuilderService().Build(facturaEmitida(), perfil())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Facturae", root.Tag)

	assert.Equal(t, "3.2.2", root.FindElement("FileHeader/SchemaVersion").Text())
	assert.Equal(t, "12345678Z",
		root.FindElement("Parties/SellerParty/TaxIdentification/TaxIdentificationNumber").Text())
	assert.Equal(t, "B12345674",
		root.FindElement("Parties/BuyerParty/TaxIdentification/TaxIdentificationNumber").Text())

	inv := root.FindElement("Invoices/Invoice")
	require.NotNil(t, inv)
	assert.Equal(t, "A-25-1", inv.FindElement("InvoiceHeader/InvoiceNumber").Text())
	assert.Equal(t, "2025-02-10", inv.FindElement("InvoiceIssueData/IssueDate").Text())
	assert.Equal(t, "1060.00", inv.FindElement("InvoiceTotals/InvoiceTotal").Text())

	// La retención IRPF aparece como impuesto retenido, no sumada al IVA.
	assert.Equal(t, "150.00", inv.FindElement("TaxesWithheld/Tax/TaxAmount/TotalAmount").Text())
}

func TestBuild_RechazaGastosYPerfilIncompleto(t *testing.T) {
	svc := NewXMLBuilderService()

	gasto := facturaEmitida()
	gasto.Kind = entity.KindExpense
	_, err := svc.Build(gasto, perfil())
	assert.Error(t, err)

	sinNIF := perfil()
	sinNIF.TaxID = ""
	_, err = svc.Build(facturaEmitida(), sinNIF)
	assert.Error(t, err)
}

func TestBuild_SinRetencionNoEmiteTaxesWithheld(t *testing.T) {
	rec := facturaEmitida()
	rec.WithholdingRate = decimal.Zero
	rec.WithholdingAmount = decimal.Zero
	rec.TotalAmount = decimal.RequireFromString("1210")

	out, err := NewXMLBuilderService().Build(rec, perfil())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Nil(t, doc.Root().FindElement("Invoices/Invoice/TaxesWithheld"))
}
