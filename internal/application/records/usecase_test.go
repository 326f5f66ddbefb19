package records_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// fakeRepo repositorio en memoria para los tests del caso de uso.
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
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRepo) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_ = f.Delete(ctx, id)
	}
	return nil
}

func peticionIngreso() dto.SaveRecordRequest {
	return dto.SaveRecordRequest{
		Kind:              "INCOME",
		DocumentNumber:    "A-25-1",
		IssueDate:         "2025-02-10",
		CounterpartyTaxID: "12345678Z",
		CounterpartyName:  "Cliente SL",
		TaxBase:           decimal.RequireFromString("1000"),
		VATRate:           decimal.RequireFromString("21"),
		VATAmount:         decimal.RequireFromString("210"),
		TotalAmount:       decimal.RequireFromString("1210"),
	}
}

func TestCreate_GuardaApunteValido(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())

	resp, err := uc.Create(context.Background(), peticionIngreso())
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	require.NotNil(t, resp.Record)
	assert.NotEmpty(t, resp.Record.ID)
	assert.Equal(t, "A-25-1", resp.Record.DocumentNumber)
}

// TestCreate_DuplicadoDevuelveIncidenciaNoError: el segundo A-25-1 del mismo
// tipo no se guarda y la incidencia viaja como dato, no como error.
func TestCreate_DuplicadoDevuelveIncidenciaNoError(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, peticionIngreso())
	require.NoError(t, err)

	otra := peticionIngreso()
	otra.CounterpartyTaxID = "X1234567L"
	otra.CounterpartyName = "Otro Cliente SL"
	resp, err := uc.Create(ctx, otra)
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	require.NotEmpty(t, resp.Check.Blocking)
	assert.Equal(t, aeat.IssueDuplicateNumber, resp.Check.Blocking[0].Code)
}

// TestCreate_AvisoRequiereConfirmacion: un gasto con NIF extranjero solo se
// guarda con confirm=true; sin él vuelve con el aviso pendiente.
func TestCreate_AvisoRequiereConfirmacion(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	gasto := peticionIngreso()
	gasto.Kind = "EXPENSE"
	gasto.DocumentNumber = "R-25-1"
	gasto.CounterpartyTaxID = "FR40303265045" // IVA francés
	gasto.Deductible = true

	resp, err := uc.Create(ctx, gasto)
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	require.Len(t, resp.Check.Advisory, 1)

	gasto.Confirm = true
	resp, err = uc.Create(ctx, gasto)
	require.NoError(t, err)
	assert.True(t, resp.Saved, "con confirmación explícita el aviso no impide guardar")
}

func TestUpdate_SustitucionCompletaConservaIDYTipo(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	creado, err := uc.Create(ctx, peticionIngreso())
	require.NoError(t, err)
	id := creado.Record.ID

	edicion := peticionIngreso()
	edicion.CounterpartyName = "Cliente Renombrado SL"
	resp, err := uc.Update(ctx, id, edicion)
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Equal(t, id, resp.Record.ID)
	assert.Equal(t, "Cliente Renombrado SL", resp.Record.CounterpartyName)

	edicion.Kind = "EXPENSE"
	_, err = uc.Update(ctx, id, edicion)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el tipo es inmutable tras la creación")
}

func TestNextNumber_ProyectaSobreElLibro(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	n, err := uc.NextNumber(ctx, "INCOME", 2025)
	require.NoError(t, err)
	assert.Equal(t, "A-25-1", n.Number)

	_, err = uc.Create(ctx, peticionIngreso())
	require.NoError(t, err)

	n, err = uc.NextNumber(ctx, "INCOME", 2025)
	require.NoError(t, err)
	assert.Equal(t, "A-25-2", n.Number)

	n, err = uc.NextNumber(ctx, "EXPENSE", 2025)
	require.NoError(t, err)
	assert.Equal(t, "R-25-1", n.Number, "la serie de gastos es independiente")
}

func TestList_FiltraPorEjercicioTrimestreYTipo(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	q1 := peticionIngreso()
	_, err := uc.Create(ctx, q1)
	require.NoError(t, err)

	q3 := peticionIngreso()
	q3.DocumentNumber = "A-25-2"
	q3.IssueDate = "2025-08-01"
	_, err = uc.Create(ctx, q3)
	require.NoError(t, err)

	todos, err := uc.List(ctx, 2025, 0, "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	t1, err := uc.List(ctx, 2025, 1, "INCOME")
	require.NoError(t, err)
	require.Len(t, t1, 1)
	assert.Equal(t, "A-25-1", t1[0].DocumentNumber)
}

func TestDelete_YBulkDelete(t *testing.T) {
	uc := records.NewUseCase(newFakeRepo())
	ctx := context.Background()

	a, _ := uc.Create(ctx, peticionIngreso())
	b := peticionIngreso()
	b.DocumentNumber = "A-25-2"
	bresp, _ := uc.Create(ctx, b)

	require.NoError(t, uc.Delete(ctx, a.Record.ID))
	assert.ErrorIs(t, uc.Delete(ctx, a.Record.ID), domain.ErrNotFound)

	require.NoError(t, uc.BulkDelete(ctx, []string{bresp.Record.ID}))

	restantes, err := uc.List(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.Empty(t, restantes)
}
