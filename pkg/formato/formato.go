// Package formato centraliza el formateo es-ES de importes, porcentajes y
// fechas para las superficies de salida (PDF, CSV, XLSX). El motor fiscal
// trabaja siempre con decimal; aquí solo se formatea para mostrar.
package formato

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.EuropeanSpanish)

// Euros formatea un importe con dos decimales, punto de miles y coma decimal.
// Ej: 1234.5 → "1.234,50 €".
func Euros(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%v €", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Porcentaje formatea un tipo impositivo sin decimales de relleno.
// Ej: 21 → "21 %", 7.5 → "7,5 %".
func Porcentaje(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%v %%", number.Decimal(f, number.MaxFractionDigits(2)))
}

// Fecha formatea una fecha en el formato español DD/MM/YYYY.
func Fecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// Trimestre etiqueta de periodo: "1T", "2T"… y "Anual" para 0.
func Trimestre(q int) string {
	if q < 1 || q > 4 {
		return "Anual"
	}
	return printer.Sprintf("%dT", q)
}
