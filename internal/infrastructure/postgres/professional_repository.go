package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
)

var _ repository.ProfessionalRepository = (*ProfessionalRepo)(nil)

// ProfessionalRepo persistencia del perfil del profesional. La tabla tiene
// una sola fila, forzada con la columna singleton.
type ProfessionalRepo struct {
	q Querier
}

// NewProfessionalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfessionalRepository(q Querier) *ProfessionalRepo {
	return &ProfessionalRepo{q: q}
}

// Get devuelve el perfil, o nil sin error si todavía no se rellenó.
func (r *ProfessionalRepo) Get(ctx context.Context) (*entity.Professional, error) {
	query := `
		SELECT id, name, tax_id, address, city, postal_code, province, iae_heading,
		       email, phone, created_at, updated_at
		FROM professional WHERE singleton = TRUE`
	var p entity.Professional
	err := r.q.QueryRow(ctx, query).Scan(
		&p.ID, &p.Name, &p.TaxID, &p.Address, &p.City, &p.PostalCode, &p.Province,
		&p.IAEHeading, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	return &p, nil
}

// Save crea o sustituye el perfil (upsert sobre la fila singleton).
func (r *ProfessionalRepo) Save(ctx context.Context, p *entity.Professional) error {
	query := `
		INSERT INTO professional (singleton, id, name, tax_id, address, city, postal_code,
		                          province, iae_heading, email, phone, created_at, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name, tax_id = EXCLUDED.tax_id, address = EXCLUDED.address,
			city = EXCLUDED.city, postal_code = EXCLUDED.postal_code, province = EXCLUDED.province,
			iae_heading = EXCLUDED.iae_heading, email = EXCLUDED.email, phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.TaxID, p.Address, p.City, p.PostalCode,
		p.Province, p.IAEHeading, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save professional: %w", err)
	}
	return nil
}
