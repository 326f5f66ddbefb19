// Package pdf genera los documentos imprimibles del ejercicio: el resumen
// de modelos tributarios y el libro registro de facturas.
//
// Layout de la página A4 del resumen:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + NIF del profesional  │  Ejercicio          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MODELO 303 por trimestre + anual                            │
//	│  MODELO 130 por trimestre + anual                            │
//	│  MODELO 111 por trimestre + anual                            │
//	│  MODELO 390 con desglose por tipo de IVA                     │
//	│  MODELO 347 operaciones > 3.005,06 €                         │
//	│  MODELO 190 retenciones soportadas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Leyenda: borrador informativo, no presentable               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/pkg/formato"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera los PDFs del ejercicio usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// SummaryPDF genera el resumen anual de modelos y devuelve sus bytes.
func (g *MarotoReportGenerator) SummaryPDF(
	_ context.Context,
	professional *entity.Professional,
	summary aeat.FiscalSummary,
) ([]byte, error) {
	m := maroto.New(pageConfig(fmt.Sprintf("Resumen fiscal %d", summary.Year), professional))

	m.AddRows(headerRow(professional, fmt.Sprintf("RESUMEN FISCAL %d", summary.Year)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// 303: IVA por trimestres
	m.AddRows(sectionTitle("MODELO 303 · Autoliquidación de IVA"))
	m.AddRows(quarterHeaderRow("IVA repercutido", "IVA soportado", "Resultado"))
	for q := 0; q < 4; q++ {
		t := summary.M303Quarters[q]
		m.AddRows(quarterRow(formato.Trimestre(t.Quarter),
			formato.Euros(t.OutputVAT), formato.Euros(t.InputVAT), formato.Euros(t.Result)))
	}
	a := summary.M303Annual
	m.AddRows(quarterTotalRow("Anual",
		formato.Euros(a.OutputVAT), formato.Euros(a.InputVAT), formato.Euros(a.Result)))

	// 130: pagos fraccionados de IRPF
	m.AddRows(sectionTitle("MODELO 130 · Pago fraccionado de IRPF"))
	m.AddRows(quarterHeaderRow("Rendimiento neto", "Retenciones", "Resultado"))
	for q := 0; q < 4; q++ {
		t := summary.M130Quarters[q]
		m.AddRows(quarterRow(formato.Trimestre(t.Quarter),
			formato.Euros(t.NetYield), formato.Euros(t.WithholdingSuffered), formato.Euros(t.Result)))
	}
	m.AddRows(quarterTotalRow("Anual",
		formato.Euros(summary.M130Annual.NetYield),
		formato.Euros(summary.M130Annual.WithholdingSuffered),
		formato.Euros(summary.M130Annual.Result)))

	// 111: retenciones practicadas
	m.AddRows(sectionTitle("MODELO 111 · Retenciones practicadas a terceros"))
	for q := 0; q < 4; q++ {
		t := summary.M111Quarters[q]
		m.AddRows(labelValueRow(formato.Trimestre(t.Quarter), formato.Euros(t.Withheld)))
	}
	m.AddRows(labelValueBoldRow("Anual", formato.Euros(summary.M111Annual.Withheld)))

	// 390: resumen anual de IVA con desglose por tipo
	m.AddRows(sectionTitle("MODELO 390 · Resumen anual de IVA"))
	for _, b := range summary.M390.Breakdown {
		m.AddRows(labelValueRow(
			fmt.Sprintf("Base al %s", formato.Porcentaje(b.Rate)),
			fmt.Sprintf("%s  (cuota %s)", formato.Euros(b.TaxBase), formato.Euros(b.VATAmount)),
		))
	}
	m.AddRows(labelValueBoldRow("Resultado anual", formato.Euros(summary.M390.Result)))

	// 347: operaciones con terceros sobre el umbral
	m.AddRows(sectionTitle("MODELO 347 · Operaciones con terceros > 3.005,06 €"))
	if len(summary.M347.Operations) == 0 {
		m.AddRows(noteRow("Sin operaciones que superen el umbral."))
	}
	for _, op := range summary.M347.Operations {
		m.AddRows(labelValueRow(
			fmt.Sprintf("%s · %s (%s)", op.TaxID, op.Name, op.Kind),
			formato.Euros(op.Total),
		))
	}

	// 190: retenciones soportadas por pagador
	m.AddRows(sectionTitle("MODELO 190 · Retenciones soportadas por pagador"))
	if len(summary.M190.Recipients) == 0 {
		m.AddRows(noteRow("Sin clientes que practiquen retención."))
	}
	for _, r := range summary.M190.Recipients {
		m.AddRows(labelValueRow(
			fmt.Sprintf("%s · %s", r.TaxID, r.Name),
			fmt.Sprintf("%s retenidos sobre %s", formato.Euros(r.Withheld), formato.Euros(r.TaxBase)),
		))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(legendRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// RecordBookPDF genera el libro registro del ejercicio y devuelve sus bytes.
func (g *MarotoReportGenerator) RecordBookPDF(
	_ context.Context,
	professional *entity.Professional,
	year int,
	records []entity.FiscalRecord,
) ([]byte, error) {
	m := maroto.New(pageConfig(fmt.Sprintf("Libro registro %d", year), professional))

	m.AddRows(headerRow(professional, fmt.Sprintf("LIBRO REGISTRO DE FACTURAS %d", year)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(bookHeaderRow())
	for _, r := range records {
		m.AddRows(bookDetailRow(&r))
	}
	if len(records) == 0 {
		m.AddRows(noteRow("El libro no tiene apuntes en este ejercicio."))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(legendRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar libro: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func pageConfig(title string, professional *entity.Professional) *marotoentity.Config {
	author := ""
	if professional != nil {
		author = professional.Name
	}
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
}

// headerRow: nombre + NIF del profesional (izq) y título del documento (der).
func headerRow(professional *entity.Professional, title string) core.Row {
	name, taxID := "—", "—"
	if professional != nil {
		name = nonEmpty(professional.Name, "—")
		taxID = nonEmpty(professional.TaxID, "—")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF: "+taxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 4,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4,
		}),
	))
}

func quarterHeaderRow(c1, c2, c3 string) core.Row {
	h := func(label string, a align.Type) core.Component {
		return text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Color: colorGray, Top: 1,
		})
	}
	return row.New(6).Add(
		col.New(2).Add(h("Periodo", align.Left)),
		col.New(3).Add(h(c1, align.Right)),
		col.New(3).Add(h(c2, align.Right)),
		col.New(4).Add(h(c3, align.Right)),
	)
}

func quarterRow(period, v1, v2, v3 string) core.Row {
	v := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1})
	}
	return row.New(6).Add(
		col.New(2).Add(v(period, align.Left)),
		col.New(3).Add(v(v1, align.Right)),
		col.New(3).Add(v(v2, align.Right)),
		col.New(4).Add(v(v3, align.Right)),
	)
}

func quarterTotalRow(period, v1, v2, v3 string) core.Row {
	v := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8.5, Align: a, Color: colorPrimary, Top: 1,
		})
	}
	return row.New(7).Add(
		col.New(2).Add(v(period, align.Left)),
		col.New(3).Add(v(v1, align.Right)),
		col.New(3).Add(v(v2, align.Right)),
		col.New(4).Add(v(v3, align.Right)),
	)
}

func labelValueRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Top: 1})),
		col.New(4).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func labelValueBoldRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8.5, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
	)
}

func noteRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

// bookHeaderRow: cabecera de la tabla del libro registro.
func bookHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 1, align.Left),
		h("Número", 2, align.Left),
		h("Contraparte", 4, align.Left),
		h("Base", 2, align.Right),
		h("IVA", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

func bookDetailRow(r *entity.FiscalRecord) core.Row {
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 7.5, Align: a, Top: 1}
	}
	counterparty := r.CounterpartyName
	if r.CounterpartyTaxID != "" {
		counterparty = fmt.Sprintf("%s (%s)", r.CounterpartyName, r.CounterpartyTaxID)
	}
	return row.New(6).Add(
		col.New(1).Add(text.New(formato.Fecha(r.IssueDate), cell(align.Left))),
		col.New(2).Add(text.New(r.DocumentNumber, cell(align.Left))),
		col.New(4).Add(text.New(counterparty, cell(align.Left))),
		col.New(2).Add(text.New(formato.Euros(r.TaxBase), cell(align.Right))),
		col.New(1).Add(text.New(formato.Euros(r.VATAmount), cell(align.Right))),
		col.New(2).Add(text.New(formato.Euros(r.TotalAmount), cell(align.Right))),
	)
}

func legendRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento informativo generado a partir del libro registro. "+
				"No sustituye a los modelos oficiales de la AEAT ni constituye una presentación.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
