package aeat

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// Modelo303 autoliquidación periódica de IVA. Quarter 1..4; 0 en el
// acumulado anual (suma exacta de los cuatro trimestres).
type Modelo303 struct {
	Year    int
	Quarter int
	// IVA devengado: Σ cuota IVA de los INCOME del periodo.
	OutputVAT decimal.Decimal
	// IVA soportado deducible: Σ cuota IVA de los EXPENSE deducibles.
	InputVAT decimal.Decimal
	// Resultado: devengado − soportado (positivo = a ingresar).
	Result decimal.Decimal
}

// VATRateBreakdown línea del desglose de IVA soportado por tipo (modelo 390).
type VATRateBreakdown struct {
	Rate      decimal.Decimal
	TaxBase   decimal.Decimal
	VATAmount decimal.Decimal
}

// Modelo390 resumen anual de IVA: totales idénticos al 303 anual más el
// desglose del soportado deducible por tipo impositivo, ordenado por tipo
// descendente. Con libro sin gastos deducibles el desglose queda vacío.
type Modelo390 struct {
	Year      int
	OutputVAT decimal.Decimal
	InputVAT  decimal.Decimal
	Result    decimal.Decimal
	Breakdown []VATRateBreakdown
}

// Modelo130 pago fraccionado de IRPF. Quarter 0 en el acumulado anual.
type Modelo130 struct {
	Year    int
	Quarter int
	// Ingresos computables: Σ base imponible de los INCOME.
	Income decimal.Decimal
	// Gastos deducibles: Σ base imponible de los EXPENSE deducibles.
	DeductibleExpenses decimal.Decimal
	// Rendimiento neto: ingresos − gastos deducibles.
	NetYield decimal.Decimal
	// Cuota teórica: max(rendimiento neto, 0) × 20 %.
	TheoreticalQuota decimal.Decimal
	// Retenciones soportadas: Σ retención IRPF de los INCOME.
	WithholdingSuffered decimal.Decimal
	// Resultado: cuota teórica − retenciones soportadas.
	Result decimal.Decimal
}

// Modelo111 retenciones practicadas a terceros que se ingresan a la AEAT:
// Σ retención IRPF de los EXPENSE deducibles del periodo.
type Modelo111 struct {
	Year     int
	Quarter  int
	Withheld decimal.Decimal
}

// Operation347 contraparte declarable en el modelo 347.
type Operation347 struct {
	TaxID string
	Name  string
	Total decimal.Decimal
	// Kind dominante del grupo: el tipo con mayor volumen absoluto.
	Kind entity.RecordKind
}

// Modelo347 declaración anual de operaciones con terceros: contrapartes
// cuyo volumen anual Σ|total| supera estrictamente el umbral legal.
type Modelo347 struct {
	Year       int
	Operations []Operation347
}

// Recipient190 perceptor del modelo 190 (cliente que practicó retención).
type Recipient190 struct {
	TaxID    string
	Name     string
	TaxBase  decimal.Decimal
	Withheld decimal.Decimal
}

// Modelo190 resumen anual de retenciones soportadas en facturas emitidas,
// agrupado por cliente.
type Modelo190 struct {
	Year       int
	Recipients []Recipient190
}

// FiscalSummary es la salida completa del agregador para un ejercicio:
// los seis modelos, con los periódicos a granularidad trimestral y anual.
type FiscalSummary struct {
	Year int

	M303Quarters [4]Modelo303
	M303Annual   Modelo303
	M390         Modelo390
	M130Quarters [4]Modelo130
	M130Annual   Modelo130
	M111Quarters [4]Modelo111
	M111Annual   Modelo111
	M347         Modelo347
	M190         Modelo190
}
