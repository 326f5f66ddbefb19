package aeat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

func borradorValido() *entity.FiscalRecord {
	return &entity.FiscalRecord{
		ID:                "rec-1",
		Kind:              entity.KindIncome,
		DocumentNumber:    "A-25-1",
		IssueDate:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CounterpartyTaxID: "12345678Z",
		CounterpartyName:  "Cliente SL",
	}
}

func TestCheckBeforeSave_BorradorValidoSinIncidencias(t *testing.T) {
	res := aeat.CheckBeforeSave(borradorValido(), nil, false)
	assert.True(t, res.Clean())
}

// TestCheckBeforeSave_DuplicadoEnAlta: insertar A-25-1 dos veces para el
// mismo tipo se rechaza al segundo intento aunque la contraparte cambie.
func TestCheckBeforeSave_DuplicadoEnAlta(t *testing.T) {
	primero := borradorValido()
	libro := []entity.FiscalRecord{*primero}

	segundo := borradorValido()
	segundo.ID = "rec-2"
	segundo.CounterpartyTaxID = "X1234567L"
	segundo.CounterpartyName = "Otro Cliente SL"

	res := aeat.CheckBeforeSave(segundo, libro, false)
	require.False(t, res.OK())
	assert.Equal(t, aeat.IssueDuplicateNumber, res.Blocking[0].Code)
}

func TestCheckBeforeSave_MismoNumeroOtroTipoNoColisiona(t *testing.T) {
	ingreso := borradorValido()
	libro := []entity.FiscalRecord{*ingreso}

	gasto := borradorValido()
	gasto.ID = "rec-2"
	gasto.Kind = entity.KindExpense
	gasto.DocumentNumber = ingreso.DocumentNumber // la unicidad es por (tipo, número)

	res := aeat.CheckBeforeSave(gasto, libro, false)
	assert.True(t, res.OK())
}

// TestCheckBeforeSave_EdicionExcluyeASiMismo: al editar, el apunte que se
// sustituye no colisiona con su propio número; un tercero con el mismo
// número sí bloquea.
func TestCheckBeforeSave_EdicionExcluyeASiMismo(t *testing.T) {
	original := borradorValido()
	libro := []entity.FiscalRecord{*original}

	editado := borradorValido()
	editado.CounterpartyName = "Cliente Renombrado SL"
	res := aeat.CheckBeforeSave(editado, libro, true)
	assert.True(t, res.OK())

	tercero := borradorValido()
	tercero.ID = "rec-3"
	res = aeat.CheckBeforeSave(tercero, libro, true)
	require.False(t, res.OK())
	assert.Equal(t, aeat.IssueDuplicateNumber, res.Blocking[0].Code)
}

// TestCheckBeforeSave_CamposObligatorios: cada campo ausente produce su
// incidencia bloqueante y todas se listan a la vez.
func TestCheckBeforeSave_CamposObligatorios(t *testing.T) {
	vacio := &entity.FiscalRecord{Kind: entity.KindIncome}
	res := aeat.CheckBeforeSave(vacio, nil, false)

	require.Len(t, res.Blocking, 4, "nombre, NIF, número y fecha deben listarse todos")
	campos := map[string]bool{}
	for _, i := range res.Blocking {
		assert.Equal(t, aeat.IssueMissingField, i.Code)
		campos[i.Field] = true
	}
	assert.True(t, campos["counterpartyName"])
	assert.True(t, campos["counterpartyTaxId"])
	assert.True(t, campos["documentNumber"])
	assert.True(t, campos["issueDate"])
}

// TestCheckBeforeSave_NIFInvalidoBloqueaEnIngreso y solo avisa en gasto,
// para tolerar NIF-IVA intracomunitarios de proveedores.
func TestCheckBeforeSave_PoliticaNIFPorTipo(t *testing.T) {
	ingreso := borradorValido()
	ingreso.CounterpartyTaxID = "12345678A" // letra incorrecta, se espera Z
	res := aeat.CheckBeforeSave(ingreso, nil, false)
	require.False(t, res.OK())
	assert.Equal(t, aeat.IssueInvalidChecksum, res.Blocking[0].Code)

	gasto := borradorValido()
	gasto.Kind = entity.KindExpense
	gasto.DocumentNumber = "R-25-1"
	gasto.CounterpartyTaxID = "DE811907980" // IVA alemán: formato no reconocido
	res = aeat.CheckBeforeSave(gasto, nil, false)
	assert.True(t, res.OK(), "en gasto el NIF extranjero no bloquea")
	require.Len(t, res.Advisory, 1)
	assert.Equal(t, aeat.IssueUnrecognizedTaxID, res.Advisory[0].Code)
}

func TestCheckBeforeSave_NoMutaElBorradorNiElLibro(t *testing.T) {
	draft := borradorValido()
	draft.CounterpartyTaxID = " 12345678z " // sin normalizar
	libro := []entity.FiscalRecord{*borradorValido()}

	_ = aeat.CheckBeforeSave(draft, libro, true)

	assert.Equal(t, " 12345678z ", draft.CounterpartyTaxID, "la guardia clasifica, nunca muta")
	assert.Equal(t, "A-25-1", libro[0].DocumentNumber)
}
