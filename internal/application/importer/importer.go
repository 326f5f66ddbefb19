// Package importer implementa la importación masiva del libro (CSV y XLSX).
//
// El mapeo de columnas NO es adivinación difusa: existe una tabla explícita
// de alias por campo y un valor por defecto documentado para cada campo
// ausente. Cada fila produce el mismo borrador que el formulario manual y
// pasa por IntegrityGuard igual que lo tecleado a mano.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
)

// columnAliases tabla explícita encabezado → campo canónico. Los encabezados
// se normalizan (minúsculas, sin espacios sobrantes) antes de buscar aquí.
var columnAliases = map[string]string{
	// tipo de apunte
	"tipo": "kind", "kind": "kind", "clase": "kind",
	// número de documento
	"numero": "document_number", "número": "document_number",
	"num": "document_number", "nº": "document_number",
	"numero factura": "document_number", "número factura": "document_number",
	"document number": "document_number", "factura": "document_number",
	// fecha de expedición
	"fecha": "issue_date", "fecha factura": "issue_date",
	"fecha expedicion": "issue_date", "fecha expedición": "issue_date",
	"issue date": "issue_date",
	// fecha de anotación (solo gastos)
	"fecha registro": "registration_date", "fecha anotacion": "registration_date",
	"fecha anotación": "registration_date", "registration date": "registration_date",
	// contraparte
	"nif": "counterparty_tax_id", "cif": "counterparty_tax_id",
	"nif contraparte": "counterparty_tax_id", "tax id": "counterparty_tax_id",
	"nombre": "counterparty_name", "cliente": "counterparty_name",
	"proveedor": "counterparty_name", "razon social": "counterparty_name",
	"razón social": "counterparty_name", "name": "counterparty_name",
	"direccion": "counterparty_address", "dirección": "counterparty_address",
	"domicilio": "counterparty_address", "address": "counterparty_address",
	// importes
	"base": "tax_base", "base imponible": "tax_base", "tax base": "tax_base",
	"tipo iva": "vat_rate", "% iva": "vat_rate", "iva %": "vat_rate", "vat rate": "vat_rate",
	"cuota iva": "vat_amount", "iva": "vat_amount", "vat": "vat_amount",
	"tipo irpf": "withholding_rate", "% irpf": "withholding_rate",
	"% retencion": "withholding_rate", "% retención": "withholding_rate",
	"retencion": "withholding_amount", "retención": "withholding_amount",
	"irpf": "withholding_amount", "withholding": "withholding_amount",
	"total": "total_amount", "importe total": "total_amount", "total amount": "total_amount",
	// clasificación
	"deducible": "deductible", "deductible": "deductible",
	"categoria": "category", "categoría": "category", "category": "category",
}

// Valores por defecto documentados cuando la columna no existe o la celda
// está vacía:
//   - kind:       EXPENSE (el caso habitual de importación son tickets de gasto)
//   - deductible: true para EXPENSE
//   - vat_rate:   21 (tipo general) si hay cuota de IVA pero falta el tipo
//   - resto de importes: 0
const (
	defaultKind    = "EXPENSE"
	defaultVATRate = "21"
)

// RowResult desenlace de una fila.
type RowResult struct {
	Line           int              `json:"line"` // línea del fichero (1 = primera fila de datos)
	DocumentNumber string           `json:"document_number,omitempty"`
	Saved          bool             `json:"saved"`
	Check          aeat.CheckResult `json:"check"`
	Error          string           `json:"error,omitempty"`
}

// Report resumen de la importación.
type Report struct {
	Imported int         `json:"imported"`
	Rejected int         `json:"rejected"`
	Rows     []RowResult `json:"rows"`
}

// Importer caso de uso de importación masiva. Reutiliza el alta del libro
// para que cada fila pase por las mismas comprobaciones que el formulario.
type Importer struct {
	records *records.UseCase
}

// New construye el importador.
func New(recordsUC *records.UseCase) *Importer {
	return &Importer{records: recordsUC}
}

// ImportCSV importa un CSV con cabecera. Tolera BOM UTF-8 y detecta ';' como
// separador (exportaciones de Excel en locale es-ES).
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader, confirmAdvisory bool) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("importer: leer CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	if i := bytes.IndexByte(data, '\n'); i >= 0 && bytes.Count(data[:i], []byte(";")) > bytes.Count(data[:i], []byte(",")) {
		reader.Comma = ';'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: parsear CSV: %w", err)
	}
	return im.importRows(ctx, rows, confirmAdvisory)
}

// ImportXLSX importa la primera hoja de un libro Excel con cabecera.
func (im *Importer) ImportXLSX(ctx context.Context, r io.Reader, confirmAdvisory bool) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("importer: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: leer hoja %q: %w", sheets[0], err)
	}
	return im.importRows(ctx, rows, confirmAdvisory)
}

func (im *Importer) importRows(ctx context.Context, rows [][]string, confirmAdvisory bool) (*Report, error) {
	if len(rows) == 0 {
		return &Report{}, nil
	}

	fields := resolveHeader(rows[0])
	if len(fields) == 0 {
		return nil, fmt.Errorf("importer: ninguna columna de la cabecera coincide con la tabla de alias")
	}

	report := &Report{}
	for i, row := range rows[1:] {
		line := i + 1
		if isEmptyRow(row) {
			continue
		}
		req := rowToRequest(fields, row)
		req.Confirm = confirmAdvisory

		result := RowResult{Line: line, DocumentNumber: req.DocumentNumber}
		resp, err := im.records.Create(ctx, req)
		switch {
		case err != nil:
			result.Error = err.Error()
			report.Rejected++
		case resp.Saved:
			result.Saved = true
			result.Check = resp.Check
			report.Imported++
		default:
			result.Check = resp.Check
			report.Rejected++
		}
		report.Rows = append(report.Rows, result)
	}
	return report, nil
}

// resolveHeader traduce la cabecera a campos canónicos por posición; las
// columnas sin alias se ignoran.
func resolveHeader(header []string) map[int]string {
	fields := make(map[int]string)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if f, ok := columnAliases[key]; ok {
			fields[i] = f
		}
	}
	return fields
}

func rowToRequest(fields map[int]string, row []string) dto.SaveRecordRequest {
	req := dto.SaveRecordRequest{Kind: defaultKind}
	var category string
	var sawVATAmount, sawVATRate, sawDeductible bool

	for i, field := range fields {
		if i >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[i])
		if val == "" {
			continue
		}
		switch field {
		case "kind":
			req.Kind = normalizeKind(val)
		case "document_number":
			req.DocumentNumber = val
		case "issue_date":
			req.IssueDate = normalizeDate(val)
		case "registration_date":
			req.RegistrationDate = normalizeDate(val)
		case "counterparty_tax_id":
			req.CounterpartyTaxID = val
		case "counterparty_name":
			req.CounterpartyName = val
		case "counterparty_address":
			req.CounterpartyAddress = val
		case "tax_base":
			req.TaxBase = parseAmount(val)
		case "vat_rate":
			req.VATRate = parseAmount(val)
			sawVATRate = true
		case "vat_amount":
			req.VATAmount = parseAmount(val)
			sawVATAmount = true
		case "withholding_rate":
			req.WithholdingRate = parseAmount(val)
		case "withholding_amount":
			req.WithholdingAmount = parseAmount(val)
		case "total_amount":
			req.TotalAmount = parseAmount(val)
		case "deductible":
			req.Deductible = parseBool(val)
			sawDeductible = true
		case "category":
			category = val
		}
	}

	// Defaults documentados.
	if req.Kind == "EXPENSE" && !sawDeductible {
		req.Deductible = true
	}
	if sawVATAmount && !sawVATRate && req.VATAmount.IsPositive() {
		req.VATRate = decimal.RequireFromString(defaultVATRate)
	}
	if category != "" {
		if req.Kind == "EXPENSE" {
			req.ExpenseIRPFCategory = category
		} else {
			req.IncomeCategory = category
		}
	}
	return req
}

func normalizeKind(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME", "INGRESO", "INGRESOS", "EMITIDA", "VENTA":
		return "INCOME"
	case "EXPENSE", "GASTO", "GASTOS", "RECIBIDA", "COMPRA":
		return "EXPENSE"
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}

// normalizeDate acepta YYYY-MM-DD y DD/MM/YYYY (formato habitual en España).
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) == 3 && len(parts[2]) == 4 {
		return fmt.Sprintf("%s-%02s-%02s", parts[2], parts[1], parts[0])
	}
	return s
}

// parseAmount acepta formatos "1234.56", "1.234,56" y "1234,56". Una celda
// no numérica degrada a cero: una fila mala no tumba la importación entera.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimSuffix(s, "€"))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "true", "1", "yes", "x":
		return true
	default:
		return false
	}
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
