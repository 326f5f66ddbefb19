package ai

import (
	"context"
	"fmt"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/ports"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
)

// DisabledService adaptador nulo cuando no hay proveedor de IA configurado.
// La aplicación arranca igual y los endpoints de IA responden con un error
// claro en lugar de un fallo de conexión.
type DisabledService struct{}

var _ ports.LLMService = (*DisabledService)(nil)

// NewDisabledService construye el adaptador nulo.
func NewDisabledService() *DisabledService {
	return &DisabledService{}
}

// ExtractRecord siempre rechaza: no hay proveedor configurado.
func (s *DisabledService) ExtractRecord(ctx context.Context, text, kindHint string) (*dto.ExtractedRecordDTO, error) {
	return nil, fmt.Errorf("%w: funciones de IA desactivadas, configure AI_PROVIDER", domain.ErrInvalidInput)
}

// Advise siempre rechaza: no hay proveedor configurado.
func (s *DisabledService) Advise(ctx context.Context, question string) (string, error) {
	return "", fmt.Errorf("%w: funciones de IA desactivadas, configure AI_PROVIDER", domain.ErrInvalidInput)
}
