package dto

// ExtractRecordRequest body para POST /api/ai/extract: texto OCR o pegado de
// un documento del que se quiere proponer un borrador de apunte.
type ExtractRecordRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind,omitempty"` // pista opcional: INCOME | EXPENSE
}

// ExtractedRecordDTO borrador propuesto por la IA. Es entrada NO confiable:
// pasa por IntegrityGuard y el validador de NIF exactamente igual que lo
// tecleado a mano, sin nivel de confianza aparte.
type ExtractedRecordDTO struct {
	Draft      SaveRecordRequest `json:"draft"`
	Confidence float64           `json:"confidence"` // 0.0–1.0 autoevaluada por el modelo
	Reasoning  string            `json:"reasoning,omitempty"`
}

// AdviceRequest body para POST /api/ai/advise.
type AdviceRequest struct {
	Question string `json:"question"`
}

// AdviceResponse respuesta del asesor.
type AdviceResponse struct {
	Answer string `json:"answer"`
}
