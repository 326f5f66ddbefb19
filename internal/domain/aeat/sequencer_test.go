package aeat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

func rec(kind entity.RecordKind, number string, date time.Time) entity.FiscalRecord {
	return entity.FiscalRecord{Kind: kind, DocumentNumber: number, IssueDate: date}
}

func TestNextNumber_LibroVacioArrancaEnUno(t *testing.T) {
	assert.Equal(t, "A-25-1", aeat.NextNumber(nil, entity.KindIncome, 2025))
	assert.Equal(t, "R-25-1", aeat.NextNumber(nil, entity.KindExpense, 2025))
}

func TestNextNumber_SigueAlMaximoExistente(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		rec(entity.KindIncome, "A-25-1", d),
		rec(entity.KindIncome, "A-25-5", d),
		rec(entity.KindIncome, "A-25-3", d),
	}
	assert.Equal(t, "A-25-6", aeat.NextNumber(libro, entity.KindIncome, 2025))
}

// TestNextNumber_IgnoraOtroTipoYOtroAno: dado A-25-5 (INCOME) y R-25-9
// (EXPENSE), el siguiente INCOME de 2025 es A-25-6 sin que el R-25-9 influya,
// y el de 2024 es A-24-1 aunque existan apuntes de 2025.
func TestNextNumber_IgnoraOtroTipoYOtroAno(t *testing.T) {
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		rec(entity.KindIncome, "A-25-5", d),
		rec(entity.KindExpense, "R-25-9", d),
	}
	assert.Equal(t, "A-25-6", aeat.NextNumber(libro, entity.KindIncome, 2025))
	assert.Equal(t, "A-24-1", aeat.NextNumber(libro, entity.KindIncome, 2024))
	assert.Equal(t, "R-25-10", aeat.NextNumber(libro, entity.KindExpense, 2025))
}

// TestNextNumber_PatronAncladoNoSubstring: números que solo contienen el
// patrón como fragmento no cuentan.
func TestNextNumber_PatronAncladoNoSubstring(t *testing.T) {
	d := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{
		rec(entity.KindIncome, "XA-25-7", d),   // prefijo extraño
		rec(entity.KindIncome, "A-25-7X", d),   // sufijo extraño
		rec(entity.KindIncome, "A-25-07", d),   // cero a la izquierda: fuera de patrón
		rec(entity.KindIncome, "FAC-A-25-9", d),
		rec(entity.KindIncome, "A-25-2", d),
	}
	assert.Equal(t, "A-25-3", aeat.NextNumber(libro, entity.KindIncome, 2025))
}

// TestNextNumber_IdempotenteYMonotono: dos llamadas sobre el mismo snapshot
// devuelven lo mismo; tras insertar el número propuesto, la siguiente llamada
// crece exactamente en uno.
func TestNextNumber_IdempotenteYMonotono(t *testing.T) {
	d := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	libro := []entity.FiscalRecord{rec(entity.KindIncome, "A-25-1", d)}

	n1 := aeat.NextNumber(libro, entity.KindIncome, 2025)
	n2 := aeat.NextNumber(libro, entity.KindIncome, 2025)
	assert.Equal(t, n1, n2, "proyección pura: sin reservas ni contadores")
	assert.Equal(t, "A-25-2", n1)

	libro = append(libro, rec(entity.KindIncome, n1, d))
	assert.Equal(t, "A-25-3", aeat.NextNumber(libro, entity.KindIncome, 2025))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "A-25-14", aeat.FormatNumber(entity.KindIncome, 2025, 14))
	assert.Equal(t, "R-09-1", aeat.FormatNumber(entity.KindExpense, 2009, 1))
}
