package ports

import (
	"context"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, OpenAI, Ollama, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), el dominio/aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// ExtractRecord analiza el texto de un documento (OCR o pegado) y propone
	// un borrador de apunte. kindHint es opcional: "INCOME", "EXPENSE" o "".
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ExtractRecord(ctx context.Context, text, kindHint string) (*dto.ExtractedRecordDTO, error)

	// Advise responde una consulta fiscal en lenguaje natural. Es orientativo,
	// nunca sustituye al asesor.
	Advise(ctx context.Context, question string) (string, error)
}
