package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
)

// SaveRecordRequest body para POST /api/records y PUT /api/records/:id.
// Confirm: el usuario asume explícitamente los avisos (advisory); sin él un
// borrador con avisos no se guarda.
type SaveRecordRequest struct {
	Kind             string `json:"kind"` // INCOME | EXPENSE
	DocumentNumber   string `json:"document_number"`
	IssueDate        string `json:"issue_date"`                  // YYYY-MM-DD
	RegistrationDate string `json:"registration_date,omitempty"` // YYYY-MM-DD, solo EXPENSE

	CounterpartyTaxID   string `json:"counterparty_tax_id"`
	CounterpartyName    string `json:"counterparty_name"`
	CounterpartyAddress string `json:"counterparty_address,omitempty"`

	TaxBase           decimal.Decimal `json:"tax_base"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	WithholdingRate   decimal.Decimal `json:"withholding_rate"`
	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`

	Deductible bool `json:"deductible"`

	IncomeCategory      string `json:"income_category,omitempty"`
	ExpenseIRPFCategory string `json:"expense_irpf_category,omitempty"`
	ExpenseVATCategory  string `json:"expense_vat_category,omitempty"`

	Confirm bool `json:"confirm"`
}

// RecordResponse apunte del libro en respuestas.
type RecordResponse struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	DocumentNumber   string `json:"document_number"`
	IssueDate        string `json:"issue_date"`
	RegistrationDate string `json:"registration_date,omitempty"`

	CounterpartyTaxID   string `json:"counterparty_tax_id"`
	CounterpartyName    string `json:"counterparty_name"`
	CounterpartyAddress string `json:"counterparty_address,omitempty"`

	TaxBase           decimal.Decimal `json:"tax_base"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	WithholdingRate   decimal.Decimal `json:"withholding_rate"`
	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`

	Deductible bool `json:"deductible"`

	IncomeCategory      string `json:"income_category,omitempty"`
	ExpenseIRPFCategory string `json:"expense_irpf_category,omitempty"`
	ExpenseVATCategory  string `json:"expense_vat_category,omitempty"`
}

// SaveRecordResponse resultado del guardado: el apunte si se persistió y el
// resultado de integridad (avisos pendientes incluidos).
type SaveRecordResponse struct {
	Record *RecordResponse  `json:"record,omitempty"`
	Check  aeat.CheckResult `json:"check"`
	Saved  bool             `json:"saved"`
}

// NextNumberResponse respuesta de GET /api/records/next-number.
type NextNumberResponse struct {
	Kind   string `json:"kind"`
	Year   int    `json:"year"`
	Number string `json:"number"`
}

// BulkDeleteRequest body para POST /api/records/bulk-delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// ValidateTaxIDResponse respuesta de GET /api/taxid/validate.
type ValidateTaxIDResponse struct {
	Input          string `json:"input"`
	Kind           string `json:"kind"`
	Status         string `json:"status"`
	ExpectedLetter string `json:"expected_letter,omitempty"`
}
