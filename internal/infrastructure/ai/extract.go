package ai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
)

// extractionPrompt define el rol del modelo y el formato de salida para la
// extracción de borradores. Ambos adaptadores (Anthropic y Gemini) lo usan.
const extractionPrompt = `Eres un asistente contable experto en la fiscalidad de autónomos en España (AEAT).
Recibes el texto de una factura o ticket (OCR o pegado) y devuelves ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código) con esta estructura exacta:
{
  "kind": "<INCOME si es una factura emitida por el autónomo, EXPENSE si es recibida>",
  "document_number": "<número de la factura tal cual aparece>",
  "issue_date": "<fecha de expedición en formato YYYY-MM-DD>",
  "counterparty_tax_id": "<NIF/CIF/NIE de la contraparte, sin espacios>",
  "counterparty_name": "<nombre o razón social de la contraparte>",
  "counterparty_address": "<dirección si aparece, o cadena vacía>",
  "tax_base": <base imponible como número>,
  "vat_rate": <tipo de IVA en porcentaje: 21, 10, 4 o 0>,
  "vat_amount": <cuota de IVA como número>,
  "withholding_rate": <retención IRPF en porcentaje, 0 si no hay>,
  "withholding_amount": <retención IRPF como número, 0 si no hay>,
  "total_amount": <importe total como número>,
  "deductible": <true si parece un gasto deducible de la actividad>,
  "confidence": <número decimal entre 0.0 y 1.0>,
  "reasoning": "<explicación concisa en español, máximo 200 caracteres>"
}

Reglas:
- Copia los importes del documento tal cual; NO los recalcules a partir de base × tipo.
- Si un dato no aparece, usa cadena vacía o 0. Nunca inventes un NIF.
- confidence: 0.9-1.0 = certeza alta, 0.7-0.89 = probable, <0.7 = estimado.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`

// advicePrompt define el rol del asesor fiscal conversacional.
const advicePrompt = `Eres un asesor fiscal para autónomos en España. Respondes en español, de forma
concisa y práctica, sobre IVA, IRPF y los modelos 303, 390, 130, 111, 347 y 190.
Cuando la pregunta exceda lo que puede responderse con seguridad, dilo y
recomienda consultar a un asesor colegiado. No inventes normativa.`

// llmRecordPayload es el JSON que devuelve el modelo en la extracción.
type llmRecordPayload struct {
	Kind                string  `json:"kind"`
	DocumentNumber      string  `json:"document_number"`
	IssueDate           string  `json:"issue_date"`
	CounterpartyTaxID   string  `json:"counterparty_tax_id"`
	CounterpartyName    string  `json:"counterparty_name"`
	CounterpartyAddress string  `json:"counterparty_address"`
	TaxBase             float64 `json:"tax_base"`
	VATRate             float64 `json:"vat_rate"`
	VATAmount           float64 `json:"vat_amount"`
	WithholdingRate     float64 `json:"withholding_rate"`
	WithholdingAmount   float64 `json:"withholding_amount"`
	TotalAmount         float64 `json:"total_amount"`
	Deductible          bool    `json:"deductible"`
	Confidence          float64 `json:"confidence"`
	Reasoning           string  `json:"reasoning"`
}

// toExtractedDTO convierte el payload del modelo en el DTO del borrador.
// Los números llegan como float64 del JSON del modelo; se convierten a
// decimal una sola vez aquí y ya no vuelven a tocar floats.
func (p llmRecordPayload) toExtractedDTO(kindHint string) *dto.ExtractedRecordDTO {
	kind := strings.ToUpper(strings.TrimSpace(p.Kind))
	if kind != "INCOME" && kind != "EXPENSE" {
		kind = kindHint
	}
	if kind == "" {
		kind = "EXPENSE"
	}

	confidence := p.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &dto.ExtractedRecordDTO{
		Draft: dto.SaveRecordRequest{
			Kind:                kind,
			DocumentNumber:      strings.TrimSpace(p.DocumentNumber),
			IssueDate:           strings.TrimSpace(p.IssueDate),
			CounterpartyTaxID:   strings.TrimSpace(p.CounterpartyTaxID),
			CounterpartyName:    strings.TrimSpace(p.CounterpartyName),
			CounterpartyAddress: strings.TrimSpace(p.CounterpartyAddress),
			TaxBase:             decimal.NewFromFloat(p.TaxBase),
			VATRate:             decimal.NewFromFloat(p.VATRate),
			VATAmount:           decimal.NewFromFloat(p.VATAmount),
			WithholdingRate:     decimal.NewFromFloat(p.WithholdingRate),
			WithholdingAmount:   decimal.NewFromFloat(p.WithholdingAmount),
			TotalAmount:         decimal.NewFromFloat(p.TotalAmount),
			Deductible:          kind == "EXPENSE" && p.Deductible,
		},
		Confidence: confidence,
		Reasoning:  p.Reasoning,
	}
}

func extractionUserContent(text, kindHint string) string {
	if kindHint != "" {
		return fmt.Sprintf("Tipo esperado: %s\nDocumento:\n%s", kindHint, text)
	}
	return "Documento:\n" + text
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo
// envuelva en markdown. Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
