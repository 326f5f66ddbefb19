// Package profile gestiona el perfil fiscal del propio autónomo.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
	"github.com/tu-usuario/autonomo-pro/pkg/aeat"
)

// UseCase casos de uso del perfil. A diferencia de las contrapartes del
// libro, el NIF del propio profesional se valida siempre con política
// estricta: sin un NIF/NIE correcto no hay emisor válido.
type UseCase struct {
	repo repository.ProfessionalRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProfessionalRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devuelve el perfil o ErrNotFound si aún no se rellenó.
func (uc *UseCase) Get(ctx context.Context) (*dto.ProfessionalResponse, error) {
	p, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(p)
	return &resp, nil
}

// Save crea o sustituye el perfil completo.
func (uc *UseCase) Save(ctx context.Context, in dto.SaveProfessionalRequest) (*dto.ProfessionalResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	if v := aeat.Validate(taxID); !v.Valid() {
		return nil, fmt.Errorf("%w: el NIF del profesional no es válido (%s)", domain.ErrInvalidInput, v.Status)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}

	now := time.Now()
	p := &entity.Professional{
		Name:       strings.TrimSpace(in.Name),
		TaxID:      taxID,
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Province:   strings.TrimSpace(in.Province),
		IAEHeading: strings.TrimSpace(in.IAEHeading),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		UpdatedAt:  now,
	}

	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		p.ID = current.ID
		p.CreatedAt = current.CreatedAt
	} else {
		p.ID = uuid.New().String()
		p.CreatedAt = now
	}

	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

// Current devuelve la entidad del perfil (para PDF y Facturae), o nil.
func (uc *UseCase) Current(ctx context.Context) (*entity.Professional, error) {
	return uc.repo.Get(ctx)
}

func toResponse(p *entity.Professional) dto.ProfessionalResponse {
	return dto.ProfessionalResponse{
		ID:         p.ID,
		Name:       p.Name,
		TaxID:      p.TaxID,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
		Province:   p.Province,
		IAEHeading: p.IAEHeading,
		Email:      p.Email,
		Phone:      p.Phone,
	}
}
