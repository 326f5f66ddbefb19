package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

func apunte() entity.FiscalRecord {
	return entity.FiscalRecord{
		ID:                "id-1",
		Kind:              entity.KindIncome,
		DocumentNumber:    "A-25-1",
		IssueDate:         time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		CounterpartyTaxID: "12345678Z",
		CounterpartyName:  "Cliente SL",
		TaxBase:           decimal.RequireFromString("1000"),
		VATRate:           decimal.RequireFromString("21"),
		VATAmount:         decimal.RequireFromString("210"),
		TotalAmount:       decimal.RequireFromString("1210"),
	}
}

func TestWriteBookCSV_BOMYCabecera(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookCSV(&buf, []entity.FiscalRecord{apunte()}))

	raw := buf.Bytes()
	assert.True(t, bytes.HasPrefix(raw, BOM), "el fichero empieza con BOM UTF-8")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, BOM)))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bookColumns, rows[0])

	fila := rows[1]
	assert.Equal(t, "INCOME", fila[0])
	assert.Equal(t, "A-25-1", fila[1])
	assert.Equal(t, "2025-02-10", fila[2])
	assert.Equal(t, "", fila[3], "sin fecha de registro")
	assert.Equal(t, "1000", fila[7])
	assert.Equal(t, "1210", fila[12])
	assert.Equal(t, "no", fila[13])
}

func TestWriteBookCSV_FechaRegistroYDeducible(t *testing.T) {
	reg := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	gasto := apunte()
	gasto.Kind = entity.KindExpense
	gasto.DocumentNumber = "R-25-1"
	gasto.RegistrationDate = &reg
	gasto.Deductible = true
	gasto.ExpenseIRPFCategory = "Suministros"

	var buf bytes.Buffer
	require.NoError(t, WriteBookCSV(&buf, []entity.FiscalRecord{gasto}))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), BOM)))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)

	fila := rows[1]
	assert.Equal(t, "2025-02-12", fila[3])
	assert.Equal(t, "si", fila[13])
	assert.Equal(t, "Suministros", fila[14])
}
