package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind clase de apunte del libro registro.
type RecordKind string

const (
	KindIncome  RecordKind = "INCOME"  // factura emitida
	KindExpense RecordKind = "EXPENSE" // factura o ticket recibido
)

// FiscalRecord es el apunte del libro registro de facturas del autónomo:
// una factura emitida (INCOME) o recibida (EXPENSE).
//
// Los importes derivados (VATAmount, WithholdingAmount, TotalAmount) se
// almacenan tal cual se capturaron y el motor de agregación los suma sin
// recalcularlos a partir de base × tipo. Regla de confianza deliberada:
// el documento original manda, aunque su redondeo difiera del teórico.
type FiscalRecord struct {
	ID             string
	Kind           RecordKind
	DocumentNumber string // único por Kind en todo el libro, no solo por año

	IssueDate        time.Time  // fecha de expedición; manda para año y trimestre
	RegistrationDate *time.Time // fecha de anotación contable, opcional y solo EXPENSE

	// Contraparte: cliente en INCOME, proveedor en EXPENSE. Nunca el propio profesional.
	CounterpartyTaxID   string
	CounterpartyName    string
	CounterpartyAddress string

	TaxBase           decimal.Decimal // base imponible
	VATRate           decimal.Decimal // % IVA
	VATAmount         decimal.Decimal // cuota IVA almacenada (no se recalcula)
	WithholdingRate   decimal.Decimal // % retención IRPF
	WithholdingAmount decimal.Decimal // retención IRPF almacenada
	TotalAmount       decimal.Decimal // total almacenado

	Deductible bool // solo EXPENSE; los INCOME computan siempre como devengado

	// Clasificación libre para el desglose del 390 y agrupación informativa.
	// El motor acepta cualquier string; el formulario restringe las opciones.
	IncomeCategory      string
	ExpenseIRPFCategory string
	ExpenseVATCategory  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Year año de devengo del apunte.
func (r *FiscalRecord) Year() int { return r.IssueDate.Year() }

// Quarter trimestre de devengo (1..4).
func (r *FiscalRecord) Quarter() int { return int(r.IssueDate.Month()-1)/3 + 1 }

// IsDeductibleExpense indica si el apunte computa como gasto deducible.
func (r *FiscalRecord) IsDeductibleExpense() bool {
	return r.Kind == KindExpense && r.Deductible
}
