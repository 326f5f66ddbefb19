package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/pkg/formato"
)

const bookSheet = "Libro registro"

// WriteBookXLSX serializa el libro a un XLSX con una hoja por contenido:
// el libro registro y, si se pasa el resumen, una hoja con los modelos.
func WriteBookXLSX(w io.Writer, records []entity.FiscalRecord, summary *aeat.FiscalSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), bookSheet)
	if err := writeBookSheet(f, records); err != nil {
		return err
	}
	if summary != nil {
		if err := writeSummarySheet(f, summary); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: escribir XLSX: %w", err)
	}
	return nil
}

func writeBookSheet(f *excelize.File, records []entity.FiscalRecord) error {
	header := make([]interface{}, len(bookColumns))
	for i, c := range bookColumns {
		header[i] = c
	}
	if err := setRow(f, bookSheet, 1, header); err != nil {
		return err
	}
	for i := range records {
		row := recordRow(&records[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := setRow(f, bookSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s *aeat.FiscalSummary) error {
	sheet := fmt.Sprintf("Modelos %d", s.Year)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: crear hoja %q: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Modelo", "Periodo", "Concepto", "Importe"},
	}
	for q := 0; q < 4; q++ {
		t := s.M303Quarters[q]
		rows = append(rows, []interface{}{"303", formato.Trimestre(t.Quarter), "Resultado", t.Result.String()})
	}
	rows = append(rows, []interface{}{"303", "Anual", "Resultado", s.M303Annual.Result.String()})
	for q := 0; q < 4; q++ {
		t := s.M130Quarters[q]
		rows = append(rows, []interface{}{"130", formato.Trimestre(t.Quarter), "Resultado", t.Result.String()})
	}
	rows = append(rows, []interface{}{"130", "Anual", "Resultado", s.M130Annual.Result.String()})
	for q := 0; q < 4; q++ {
		t := s.M111Quarters[q]
		rows = append(rows, []interface{}{"111", formato.Trimestre(t.Quarter), "Retenido", t.Withheld.String()})
	}
	rows = append(rows, []interface{}{"111", "Anual", "Retenido", s.M111Annual.Withheld.String()})
	for _, b := range s.M390.Breakdown {
		rows = append(rows, []interface{}{"390", "Anual",
			"Base al " + formato.Porcentaje(b.Rate), b.TaxBase.String()})
	}
	rows = append(rows, []interface{}{"390", "Anual", "Resultado", s.M390.Result.String()})
	for _, op := range s.M347.Operations {
		rows = append(rows, []interface{}{"347", "Anual",
			fmt.Sprintf("%s · %s (%s)", op.TaxID, op.Name, op.Kind), op.Total.String()})
	}
	for _, r := range s.M190.Recipients {
		rows = append(rows, []interface{}{"190", "Anual",
			fmt.Sprintf("%s · %s", r.TaxID, r.Name), r.Withheld.String()})
	}

	for i, cells := range rows {
		if err := setRow(f, sheet, i+1, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("export: celda de la fila %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("export: escribir fila %d: %w", rowNum, err)
	}
	return nil
}
