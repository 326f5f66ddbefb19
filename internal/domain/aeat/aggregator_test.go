package aeat_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func income(num string, date time.Time, taxID, name, base, vatRate, vat, retRate, ret, total string) entity.FiscalRecord {
	return entity.FiscalRecord{
		Kind: entity.KindIncome, DocumentNumber: num, IssueDate: date,
		CounterpartyTaxID: taxID, CounterpartyName: name,
		TaxBase: d(base), VATRate: d(vatRate), VATAmount: d(vat),
		WithholdingRate: d(retRate), WithholdingAmount: d(ret), TotalAmount: d(total),
	}
}

func expense(num string, date time.Time, taxID, name, base, vatRate, vat, total string, deductible bool) entity.FiscalRecord {
	return entity.FiscalRecord{
		Kind: entity.KindExpense, DocumentNumber: num, IssueDate: date,
		CounterpartyTaxID: taxID, CounterpartyName: name,
		TaxBase: d(base), VATRate: d(vatRate), VATAmount: d(vat),
		TotalAmount: d(total), Deductible: deductible,
	}
}

// Libro del escenario de referencia: dos INCOME de T1 2025 con base 1000,
// IVA 210 y retención 150 cada uno, y un EXPENSE deducible de T1 con base
// 100 e IVA 21.
func libroEscenario() []entity.FiscalRecord {
	t1 := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	return []entity.FiscalRecord{
		income("A-25-1", t1, "12345678Z", "Cliente Uno SL", "1000", "21", "210", "15", "150", "1060"),
		income("A-25-2", t1, "B12345678", "Cliente Dos SL", "1000", "21", "210", "15", "150", "1060"),
		expense("R-25-1", t1, "B87654321", "Proveedor SL", "100", "21", "21", "121", true),
	}
}

func TestModelo303Quarter_EscenarioReferencia(t *testing.T) {
	m := aeat.Modelo303Quarter(libroEscenario(), 2025, 1)
	assert.True(t, m.OutputVAT.Equal(d("420")), "devengado: 210+210, obtuvo %s", m.OutputVAT)
	assert.True(t, m.InputVAT.Equal(d("21")))
	assert.True(t, m.Result.Equal(d("399")), "resultado: 420−21")
}

func TestModelo130Quarter_EscenarioReferencia(t *testing.T) {
	m := aeat.Modelo130Quarter(libroEscenario(), 2025, 1)
	assert.True(t, m.NetYield.Equal(d("1900")), "2000−100, obtuvo %s", m.NetYield)
	assert.True(t, m.TheoreticalQuota.Equal(d("380")), "1900×0,20")
	assert.True(t, m.WithholdingSuffered.Equal(d("300")))
	assert.True(t, m.Result.Equal(d("80")), "380−300")
}

func TestModelo130Quarter_RendimientoNegativoCuotaCero(t *testing.T) {
	t2 := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		expense("R-25-9", t2, "B11111111", "Proveedor SL", "500", "21", "105", "605", true),
	}
	m := aeat.Modelo130Quarter(libro, 2025, 2)
	assert.True(t, m.NetYield.Equal(d("-500")))
	assert.True(t, m.TheoreticalQuota.IsZero(), "cuota teórica recortada a cero con rendimiento negativo")
	assert.True(t, m.Result.IsZero())
}

func TestModelo111Quarter_SoloGastosDeducibles(t *testing.T) {
	t1 := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	conRetencion := expense("R-25-2", t1, "B22222222", "Asesoría SL", "200", "21", "42", "212", true)
	conRetencion.WithholdingRate = d("15")
	conRetencion.WithholdingAmount = d("30")
	noDeducible := expense("R-25-3", t1, "B33333333", "Otro SL", "50", "21", "10.5", "60.5", false)
	noDeducible.WithholdingAmount = d("7.5")

	m := aeat.Modelo111Quarter([]entity.FiscalRecord{conRetencion, noDeducible}, 2025, 1)
	assert.True(t, m.Withheld.Equal(d("30")), "solo computa la retención de gastos deducibles")
}

// TestAditividadAnual: el anual de 303, 130 y 111 es exactamente la suma de
// los cuatro trimestrales mostrados (sin deriva entre informes).
func TestAditividadAnual(t *testing.T) {
	libro := libroEscenario()
	// Apuntes repartidos por los cuatro trimestres.
	fechas := []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
	}
	for i, f := range fechas {
		num := aeat.FormatNumber(entity.KindIncome, 2025, 10+i)
		libro = append(libro, income(num, f, "12345678Z", "Cliente Uno SL", "350.33", "21", "73.57", "15", "52.55", "371.35"))
	}

	s := aeat.Aggregate(libro, 2025)

	var sum303, sum130, sum111 decimal.Decimal
	for q := 0; q < 4; q++ {
		sum303 = sum303.Add(s.M303Quarters[q].Result)
		sum130 = sum130.Add(s.M130Quarters[q].Result)
		sum111 = sum111.Add(s.M111Quarters[q].Withheld)
	}
	assert.True(t, s.M303Annual.Result.Equal(sum303))
	assert.True(t, s.M130Annual.Result.Equal(sum130))
	assert.True(t, s.M111Annual.Withheld.Equal(sum111))
}

// TestModelo347_UmbralEstricto: 3005,06 exactos queda fuera; 3005,07 entra.
func TestModelo347_UmbralEstricto(t *testing.T) {
	f := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		income("A-25-1", f, "11111111H", "Justo En Umbral", "0", "0", "0", "0", "0", "3005.06"),
		income("A-25-2", f, "22222222J", "Sobre Umbral", "0", "0", "0", "0", "0", "3005.07"),
	}
	m := aeat.Modelo347Annual(libro, 2025)
	require.Len(t, m.Operations, 1)
	assert.Equal(t, "22222222J", m.Operations[0].TaxID)
	assert.True(t, m.Operations[0].Total.Equal(d("3005.07")))
}

// TestModelo347_AgrupaAmbosTiposYValorAbsoluto: el volumen agrupa INCOME y
// EXPENSE de la misma contraparte sumando |total| (las rectificativas
// negativas suman volumen, no lo restan).
func TestModelo347_AgrupaAmbosTiposYValorAbsoluto(t *testing.T) {
	f := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		income("A-25-1", f, "B99999999", "Mixto SL", "0", "0", "0", "0", "0", "2000"),
		expense("R-25-1", f, "B99999999", "Mixto SL", "0", "0", "0", "-1500", true),
		income("A-25-2", f, "B99999999", "Mixto SL", "0", "0", "0", "0", "0", "-100"),
	}
	m := aeat.Modelo347Annual(libro, 2025)
	require.Len(t, m.Operations, 1)
	op := m.Operations[0]
	assert.True(t, op.Total.Equal(d("3600")), "2000+1500+100 en valor absoluto, obtuvo %s", op.Total)
	assert.Equal(t, entity.KindIncome, op.Kind, "dominante: 2100 de ingreso frente a 1500 de gasto")
}

func TestModelo190_AgrupaPorClienteConRetencion(t *testing.T) {
	f := time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		income("A-25-1", f, "12345678Z", "Despacho SL", "1000", "21", "210", "15", "150", "1060"),
		income("A-25-2", f, "12345678Z", "Despacho SL", "500", "21", "105", "15", "75", "530"),
		income("A-25-3", f, "X1234567L", "Sin Retención SL", "800", "21", "168", "0", "0", "968"),
	}
	m := aeat.Modelo190Annual(libro, 2025)
	require.Len(t, m.Recipients, 1, "los clientes sin retención no aparecen en el 190")
	r := m.Recipients[0]
	assert.Equal(t, "12345678Z", r.TaxID)
	assert.True(t, r.TaxBase.Equal(d("1500")))
	assert.True(t, r.Withheld.Equal(d("225")))
}

// TestModelo390_DesgloseCuadraConElSoportadoAnual: Σ cuotas del desglose ==
// IVA soportado anual, con tipos ordenados de mayor a menor.
func TestModelo390_DesgloseCuadraConElSoportadoAnual(t *testing.T) {
	f := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		expense("R-25-1", f, "B11111111", "General SL", "100", "21", "21", "121", true),
		expense("R-25-2", f, "B11111111", "General SL", "200", "21", "42", "242", true),
		expense("R-25-3", f, "B22222222", "Reducido SL", "300", "10", "30", "330", true),
		expense("R-25-4", f, "B33333333", "Superreducido SL", "400", "4", "16", "416", true),
		expense("R-25-5", f, "B44444444", "No Deducible SL", "999", "21", "209.79", "1208.79", false),
	}
	m := aeat.Modelo390Annual(libro, 2025)

	require.Len(t, m.Breakdown, 3)
	assert.True(t, m.Breakdown[0].Rate.Equal(d("21")), "orden por tipo descendente")
	assert.True(t, m.Breakdown[1].Rate.Equal(d("10")))
	assert.True(t, m.Breakdown[2].Rate.Equal(d("4")))
	assert.True(t, m.Breakdown[0].TaxBase.Equal(d("300")))

	var suma decimal.Decimal
	for _, b := range m.Breakdown {
		suma = suma.Add(b.VATAmount)
	}
	assert.True(t, suma.Equal(m.InputVAT), "el desglose debe cuadrar con el soportado anual")
}

func TestModelo390_SinGastosDeduciblesDesgloseVacio(t *testing.T) {
	f := time.Date(2025, 4, 4, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		income("A-25-1", f, "12345678Z", "Cliente SL", "1000", "21", "210", "0", "0", "1210"),
	}
	m := aeat.Modelo390Annual(libro, 2025)
	assert.Empty(t, m.Breakdown)
	assert.True(t, m.OutputVAT.Equal(d("210")))
}

// TestAggregate_LibroVacio: agregación total sobre el conjunto vacío:
// resumen con importes a cero, nunca error.
func TestAggregate_LibroVacio(t *testing.T) {
	s := aeat.Aggregate(nil, 2025)
	assert.True(t, s.M303Annual.Result.IsZero())
	assert.True(t, s.M130Annual.Result.IsZero())
	assert.True(t, s.M111Annual.Withheld.IsZero())
	assert.Empty(t, s.M347.Operations)
	assert.Empty(t, s.M190.Recipients)
	assert.Empty(t, s.M390.Breakdown)
}

// TestAggregate_ImportesNegativosNoRompen: el motor no rechaza importes
// negativos (rectificativas); agrega sin fallar.
func TestAggregate_ImportesNegativosNoRompen(t *testing.T) {
	f := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		income("A-25-1", f, "12345678Z", "Cliente SL", "-100", "21", "-21", "15", "-15", "-121"),
	}
	s := aeat.Aggregate(libro, 2025)
	assert.True(t, s.M303Annual.OutputVAT.Equal(d("-21")))
	assert.True(t, s.M130Annual.Income.Equal(d("-100")))
}

func TestAggregate_IgnoraOtrosEjercicios(t *testing.T) {
	libro := libroEscenario()
	otro := income("A-24-1", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		"12345678Z", "Cliente SL", "9999", "21", "2099.79", "15", "1499.85", "12098.79")
	libro = append(libro, otro)

	s := aeat.Aggregate(libro, 2025)
	assert.True(t, s.M303Annual.OutputVAT.Equal(d("420")), "el apunte de 2024 no computa en 2025")
}
