package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/importer"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// fakeRepo repositorio en memoria, suficiente para ejercitar el flujo
// fila → borrador → IntegrityGuard → alta.
type fakeRepo struct {
	byID  map[string]entity.FiscalRecord
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]entity.FiscalRecord{}}
}

func (f *fakeRepo) ListAll(context.Context) ([]entity.FiscalRecord, error) {
	out := make([]entity.FiscalRecord, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*entity.FiscalRecord, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRepo) Insert(_ context.Context, r *entity.FiscalRecord) error {
	f.byID[r.ID] = *r
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeRepo) Replace(_ context.Context, id string, r *entity.FiscalRecord) error {
	f.byID[id] = *r
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_ = f.Delete(ctx, id)
	}
	return nil
}

func nuevoImportador() (*importer.Importer, *records.UseCase) {
	uc := records.NewUseCase(newFakeRepo())
	return importer.New(uc), uc
}

// TestImportCSV_CabeceraConAliasEnEspanol: cabecera de Excel es-ES con ';',
// importes con coma decimal y fechas DD/MM/YYYY.
func TestImportCSV_CabeceraConAliasEnEspanol(t *testing.T) {
	im, uc := nuevoImportador()

	csvData := "\uFEFF" + strings.Join([]string{
		"Tipo;Número;Fecha;NIF;Nombre;Base Imponible;% IVA;Cuota IVA;Total;Deducible",
		"Gasto;R-25-1;15/02/2025;12345678Z;Proveedor SL;100,00;21;21,00;121,00;Sí",
		"Ingreso;A-25-1;20/02/2025;12345678Z;Cliente SL;1.000,00;21;210,00;1.210,00;",
	}, "\n")

	report, err := im.ImportCSV(context.Background(), strings.NewReader(csvData), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Rejected)

	libro, err := uc.List(context.Background(), 2025, 1, "")
	require.NoError(t, err)
	require.Len(t, libro, 2)
	assert.Equal(t, "2025-02-15", libro[0].IssueDate)
	assert.Equal(t, "100", libro[0].TaxBase.String())
	assert.True(t, libro[0].Deductible)
	assert.Equal(t, "1000", libro[1].TaxBase.String())
}

// TestImportCSV_FilaMalaNoTumbaElResto: el duplicado se rechaza con su
// incidencia y las demás filas se importan igual.
func TestImportCSV_FilaMalaNoTumbaElResto(t *testing.T) {
	im, _ := nuevoImportador()

	csvData := strings.Join([]string{
		"tipo,numero,fecha,nif,nombre,base,cuota iva,total",
		"INCOME,A-25-1,2025-01-10,12345678Z,Cliente SL,100,21,121",
		"INCOME,A-25-1,2025-01-11,12345678Z,Cliente SL,200,42,242",
		"INCOME,A-25-2,2025-01-12,12345678Z,Cliente SL,300,63,363",
	}, "\n")

	report, err := im.ImportCSV(context.Background(), strings.NewReader(csvData), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Rejected)

	require.Len(t, report.Rows, 3)
	assert.False(t, report.Rows[1].Saved)
	assert.NotEmpty(t, report.Rows[1].Check.Blocking, "el duplicado viaja como incidencia, no como error")
}

// TestImportCSV_AvisosSoloConConfirmacion: el NIF intracomunitario de un
// gasto es aviso; sin confirmación global la fila queda rechazada.
func TestImportCSV_AvisosSoloConConfirmacion(t *testing.T) {
	csvData := strings.Join([]string{
		"tipo,numero,fecha,nif,nombre,base,total",
		"EXPENSE,R-25-1,2025-03-01,FR40303265045,Fournisseur SARL,50,60.50",
	}, "\n")

	im, _ := nuevoImportador()
	report, err := im.ImportCSV(context.Background(), strings.NewReader(csvData), false)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Rows, 1)
	assert.NotEmpty(t, report.Rows[0].Check.Advisory)

	im2, _ := nuevoImportador()
	report, err = im2.ImportCSV(context.Background(), strings.NewReader(csvData), true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
}

func TestImportCSV_CabeceraSinAliasConocidos(t *testing.T) {
	im, _ := nuevoImportador()
	_, err := im.ImportCSV(context.Background(), strings.NewReader("foo,bar\n1,2\n"), false)
	assert.Error(t, err)
}

func TestImportXLSX_PrimeraHoja(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	filas := [][]interface{}{
		{"Tipo", "Numero", "Fecha", "NIF", "Nombre", "Base", "Cuota IVA", "Total"},
		{"INCOME", "A-25-1", "2025-04-05", "12345678Z", "Cliente SL", 500, 105, 605},
	}
	for i, fila := range filas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &fila))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	im, uc := nuevoImportador()
	report, err := im.ImportXLSX(context.Background(), buf, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)

	libro, err := uc.List(context.Background(), 2025, 2, "INCOME")
	require.NoError(t, err)
	require.Len(t, libro, 1)
	assert.Equal(t, "A-25-1", libro[0].DocumentNumber)
}
