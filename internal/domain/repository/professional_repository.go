package repository

import (
	"context"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// ProfessionalRepository define el puerto de persistencia del perfil del
// autónomo (aplicación mono-profesional: como mucho una fila).
type ProfessionalRepository interface {
	Get(ctx context.Context) (*entity.Professional, error)
	Save(ctx context.Context, p *entity.Professional) error
}
