// Package export escribe el libro registro en CSV y XLSX. Los ficheros que
// produce son reimportables: las cabeceras coinciden con la tabla de alias
// del importador y los importes van en formato decimal plano.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// BOM UTF-8 para que Excel en Windows detecte la codificación.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// bookColumns cabecera del libro registro exportado.
var bookColumns = []string{
	"Tipo",
	"Numero",
	"Fecha",
	"Fecha Registro",
	"NIF",
	"Nombre",
	"Direccion",
	"Base Imponible",
	"% IVA",
	"Cuota IVA",
	"% IRPF",
	"Retencion",
	"Total",
	"Deducible",
	"Categoria",
}

const csvDateLayout = "2006-01-02"

// CSVWriter escribe el libro como CSV con separador ';' (Excel es-ES).
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter crea el writer y emite BOM + cabecera.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	if _, err := w.Write(BOM); err != nil {
		return nil, fmt.Errorf("export: escribir BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(bookColumns); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera: %w", err)
	}
	return &CSVWriter{csv: cw}, nil
}

// WriteRecord añade una fila con el apunte.
func (w *CSVWriter) WriteRecord(r *entity.FiscalRecord) error {
	if err := w.csv.Write(recordRow(r)); err != nil {
		return fmt.Errorf("export: escribir fila: %w", err)
	}
	return nil
}

// Flush vuelca el buffer y devuelve el primer error acumulado.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// WriteBookCSV serializa el libro completo a w.
func WriteBookCSV(w io.Writer, records []entity.FiscalRecord) error {
	cw, err := NewCSVWriter(w)
	if err != nil {
		return err
	}
	for i := range records {
		if err := cw.WriteRecord(&records[i]); err != nil {
			return err
		}
	}
	return cw.Flush()
}

func recordRow(r *entity.FiscalRecord) []string {
	regDate := ""
	if r.RegistrationDate != nil {
		regDate = r.RegistrationDate.Format(csvDateLayout)
	}
	return []string{
		string(r.Kind),
		r.DocumentNumber,
		formatDate(r.IssueDate),
		regDate,
		r.CounterpartyTaxID,
		r.CounterpartyName,
		r.CounterpartyAddress,
		r.TaxBase.String(),
		r.VATRate.String(),
		r.VATAmount.String(),
		r.WithholdingRate.String(),
		r.WithholdingAmount.String(),
		r.TotalAmount.String(),
		formatBool(r.Deductible),
		category(r),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvDateLayout)
}

func formatBool(b bool) string {
	if b {
		return "si"
	}
	return "no"
}

func category(r *entity.FiscalRecord) string {
	if r.Kind == entity.KindExpense {
		return r.ExpenseIRPFCategory
	}
	return r.IncomeCategory
}
