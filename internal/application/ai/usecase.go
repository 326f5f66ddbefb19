// Package ai orquesta la extracción de borradores y el asesor fiscal.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/ports"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
)

// llmTimeout las llamadas a LLMs pueden demorar varios segundos; el timeout
// evita que las latencias externas bloqueen los goroutines del servidor.
const llmTimeout = 30 * time.Second

// UseCase orquesta la extracción asistida por IA. El borrador que devuelve
// el modelo es entrada NO confiable: antes de entregarlo al formulario pasa
// una previsualización de IntegrityGuard para que el usuario vea las
// incidencias junto a la propuesta.
type UseCase struct {
	llm     ports.LLMService
	records *records.UseCase
}

// NewUseCase construye el caso de uso inyectando el puerto LLMService.
func NewUseCase(llm ports.LLMService, recordsUC *records.UseCase) *UseCase {
	return &UseCase{llm: llm, records: recordsUC}
}

// ExtractResult borrador propuesto más la previsualización de integridad.
type ExtractResult struct {
	Extracted dto.ExtractedRecordDTO `json:"extracted"`
	Check     aeat.CheckResult       `json:"check"`
}

// Extract valida la entrada, delega al LLM y previsualiza la integridad del
// borrador contra el libro actual. Nunca guarda nada.
func (uc *UseCase) Extract(ctx context.Context, req dto.ExtractRecordRequest) (*ExtractResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text es obligatorio", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	extracted, err := uc.llm.ExtractRecord(ctx, req.Text, req.Kind)
	if err != nil {
		return nil, fmt.Errorf("extracción IA: %w", err)
	}

	check, err := uc.records.PreviewCheck(ctx, extracted.Draft)
	if err != nil {
		return nil, err
	}
	return &ExtractResult{Extracted: *extracted, Check: check}, nil
}

// Advise responde una consulta fiscal en lenguaje natural.
func (uc *UseCase) Advise(ctx context.Context, req dto.AdviceRequest) (*dto.AdviceResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: question es obligatoria", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	answer, err := uc.llm.Advise(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("asesor IA: %w", err)
	}
	return &dto.AdviceResponse{Answer: answer}, nil
}
