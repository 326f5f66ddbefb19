package dto

import "github.com/shopspring/decimal"

// Los DTO de informes exponen los importes con precisión completa (decimal
// serializado como string JSON); el formato a dos decimales con separadores
// es-ES es cosa de la capa de presentación.

// Modelo303DTO liquidación de IVA de un periodo (Quarter 0 = anual).
type Modelo303DTO struct {
	Year      int             `json:"year"`
	Quarter   int             `json:"quarter,omitempty"`
	OutputVAT decimal.Decimal `json:"output_vat"`
	InputVAT  decimal.Decimal `json:"input_vat"`
	Result    decimal.Decimal `json:"result"`
}

// VATBreakdownDTO línea del desglose por tipo del 390.
type VATBreakdownDTO struct {
	Rate      decimal.Decimal `json:"rate"`
	TaxBase   decimal.Decimal `json:"tax_base"`
	VATAmount decimal.Decimal `json:"vat_amount"`
}

// Modelo390DTO resumen anual de IVA.
type Modelo390DTO struct {
	Year      int               `json:"year"`
	OutputVAT decimal.Decimal   `json:"output_vat"`
	InputVAT  decimal.Decimal   `json:"input_vat"`
	Result    decimal.Decimal   `json:"result"`
	Breakdown []VATBreakdownDTO `json:"breakdown"`
}

// Modelo130DTO pago fraccionado de IRPF de un periodo.
type Modelo130DTO struct {
	Year                int             `json:"year"`
	Quarter             int             `json:"quarter,omitempty"`
	Income              decimal.Decimal `json:"income"`
	DeductibleExpenses  decimal.Decimal `json:"deductible_expenses"`
	NetYield            decimal.Decimal `json:"net_yield"`
	TheoreticalQuota    decimal.Decimal `json:"theoretical_quota"`
	WithholdingSuffered decimal.Decimal `json:"withholding_suffered"`
	Result              decimal.Decimal `json:"result"`
}

// Modelo111DTO retenciones practicadas de un periodo.
type Modelo111DTO struct {
	Year     int             `json:"year"`
	Quarter  int             `json:"quarter,omitempty"`
	Withheld decimal.Decimal `json:"withheld"`
}

// Operation347DTO contraparte declarable del 347.
type Operation347DTO struct {
	TaxID string          `json:"tax_id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Kind  string          `json:"kind"`
}

// Modelo347DTO declaración anual de operaciones con terceros.
type Modelo347DTO struct {
	Year       int               `json:"year"`
	Operations []Operation347DTO `json:"operations"`
}

// Recipient190DTO perceptor del 190.
type Recipient190DTO struct {
	TaxID    string          `json:"tax_id"`
	Name     string          `json:"name"`
	TaxBase  decimal.Decimal `json:"tax_base"`
	Withheld decimal.Decimal `json:"withheld"`
}

// Modelo190DTO resumen anual de retenciones soportadas.
type Modelo190DTO struct {
	Year       int               `json:"year"`
	Recipients []Recipient190DTO `json:"recipients"`
}

// FiscalSummaryDTO dashboard del ejercicio: los seis modelos, con los
// periódicos desglosados por trimestre.
type FiscalSummaryDTO struct {
	Year int `json:"year"`

	M303Quarters []Modelo303DTO `json:"m303_quarters"`
	M303Annual   Modelo303DTO   `json:"m303_annual"`
	M390         Modelo390DTO   `json:"m390"`
	M130Quarters []Modelo130DTO `json:"m130_quarters"`
	M130Annual   Modelo130DTO   `json:"m130_annual"`
	M111Quarters []Modelo111DTO `json:"m111_quarters"`
	M111Annual   Modelo111DTO   `json:"m111_annual"`
	M347         Modelo347DTO   `json:"m347"`
	M190         Modelo190DTO   `json:"m190"`
}
