// Package records contiene los casos de uso del libro registro: alta,
// edición por sustitución, borrado, listado y proyección del siguiente
// número de documento.
package records

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
	pkgaeat "github.com/tu-usuario/autonomo-pro/pkg/aeat"
)

const dateLayout = "2006-01-02"

// UseCase casos de uso del libro registro. El flujo de guardado es siempre
// snapshot → IntegrityGuard → decisión: las incidencias viajan como datos en
// la respuesta, nunca como error, para que el formulario pueda listar todos
// los campos que fallan y pedir confirmación sobre los avisos.
type UseCase struct {
	repo repository.FiscalRecordRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FiscalRecordRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create da de alta un apunte. Las incidencias bloqueantes impiden guardar;
// los avisos solo se superan con in.Confirm (confirmación explícita).
func (uc *UseCase) Create(ctx context.Context, in dto.SaveRecordRequest) (*dto.SaveRecordResponse, error) {
	rec, err := toEntity(in)
	if err != nil {
		return nil, err
	}
	rec.ID = uuid.New().String()

	snapshot, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("records: snapshot del libro: %w", err)
	}

	check := aeat.CheckBeforeSave(rec, snapshot, false)
	if !check.OK() {
		return &dto.SaveRecordResponse{Check: check}, nil
	}
	if len(check.Advisory) > 0 && !in.Confirm {
		return &dto.SaveRecordResponse{Check: check}, nil
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := uc.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("records: insertar apunte: %w", err)
	}
	resp := toResponse(rec)
	return &dto.SaveRecordResponse{Record: &resp, Check: check, Saved: true}, nil
}

// Update edita un apunte por sustitución completa (nunca parche de campos).
// El tipo del apunte es inmutable tras la creación.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.SaveRecordRequest) (*dto.SaveRecordResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	rec, err := toEntity(in)
	if err != nil {
		return nil, err
	}
	if rec.Kind != current.Kind {
		return nil, fmt.Errorf("%w: el tipo del apunte no se puede cambiar; cree un apunte nuevo", domain.ErrInvalidInput)
	}
	rec.ID = current.ID
	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = time.Now()

	snapshot, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("records: snapshot del libro: %w", err)
	}

	check := aeat.CheckBeforeSave(rec, snapshot, true)
	if !check.OK() {
		return &dto.SaveRecordResponse{Check: check}, nil
	}
	if len(check.Advisory) > 0 && !in.Confirm {
		return &dto.SaveRecordResponse{Check: check}, nil
	}

	if err := uc.repo.Replace(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("records: sustituir apunte: %w", err)
	}
	resp := toResponse(rec)
	return &dto.SaveRecordResponse{Record: &resp, Check: check, Saved: true}, nil
}

// GetByID devuelve un apunte.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RecordResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(rec)
	return &resp, nil
}

// List devuelve el libro filtrado por ejercicio (year>0), trimestre (1..4) y
// tipo, ordenado por fecha de expedición y número.
func (uc *UseCase) List(ctx context.Context, year, quarter int, kind string) ([]dto.RecordResponse, error) {
	snapshot, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordResponse, 0, len(snapshot))
	for i := range snapshot {
		r := &snapshot[i]
		if year > 0 && r.IssueDate.Year() != year {
			continue
		}
		if quarter >= 1 && quarter <= 4 && r.Quarter() != quarter {
			continue
		}
		if kind != "" && string(r.Kind) != kind {
			continue
		}
		out = append(out, toResponse(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IssueDate != out[j].IssueDate {
			return out[i].IssueDate < out[j].IssueDate
		}
		return out[i].DocumentNumber < out[j].DocumentNumber
	})
	return out, nil
}

// Delete borra un apunte.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// BulkDelete borra varios apuntes de una vez.
func (uc *UseCase) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.DeleteMany(ctx, ids)
}

// NextNumber proyección pura del siguiente número libre para tipo y año.
// Se invoca en cada pulsación del formulario; no reserva nada.
func (uc *UseCase) NextNumber(ctx context.Context, kind string, year int) (*dto.NextNumberResponse, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	if year < 2000 || year > 2099 {
		return nil, fmt.Errorf("%w: año fuera de rango", domain.ErrInvalidInput)
	}
	snapshot, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{
		Kind:   string(k),
		Year:   year,
		Number: aeat.NextNumber(snapshot, k, year),
	}, nil
}

// PreviewCheck pasa un borrador por IntegrityGuard contra el libro actual
// sin guardar nada. Lo usa la extracción asistida para mostrar las
// incidencias junto a la propuesta.
func (uc *UseCase) PreviewCheck(ctx context.Context, in dto.SaveRecordRequest) (aeat.CheckResult, error) {
	rec, err := toEntity(in)
	if err != nil {
		return aeat.CheckResult{}, err
	}
	snapshot, err := uc.repo.ListAll(ctx)
	if err != nil {
		return aeat.CheckResult{}, fmt.Errorf("records: snapshot del libro: %w", err)
	}
	return aeat.CheckBeforeSave(rec, snapshot, false), nil
}

// ValidateTaxID valida un identificador fiscal sin tocar el libro (para la
// validación en vivo del formulario).
func (uc *UseCase) ValidateTaxID(identifier string) dto.ValidateTaxIDResponse {
	v := pkgaeat.Validate(identifier)
	resp := dto.ValidateTaxIDResponse{
		Input:  identifier,
		Kind:   string(v.Kind),
		Status: string(v.Status),
	}
	if v.ExpectedLetter != 0 {
		resp.ExpectedLetter = string(v.ExpectedLetter)
	}
	return resp
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func parseKind(s string) (entity.RecordKind, error) {
	switch entity.RecordKind(strings.ToUpper(strings.TrimSpace(s))) {
	case entity.KindIncome:
		return entity.KindIncome, nil
	case entity.KindExpense:
		return entity.KindExpense, nil
	default:
		return "", fmt.Errorf("%w: kind debe ser INCOME o EXPENSE", domain.ErrInvalidInput)
	}
}

func toEntity(in dto.SaveRecordRequest) (*entity.FiscalRecord, error) {
	kind, err := parseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	var issueDate time.Time
	if in.IssueDate != "" {
		issueDate, err = time.Parse(dateLayout, in.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: issue_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}

	rec := &entity.FiscalRecord{
		Kind:                kind,
		DocumentNumber:      strings.TrimSpace(in.DocumentNumber),
		IssueDate:           issueDate,
		CounterpartyTaxID:   strings.TrimSpace(in.CounterpartyTaxID),
		CounterpartyName:    strings.TrimSpace(in.CounterpartyName),
		CounterpartyAddress: strings.TrimSpace(in.CounterpartyAddress),
		TaxBase:             in.TaxBase,
		VATRate:             in.VATRate,
		VATAmount:           in.VATAmount,
		WithholdingRate:     in.WithholdingRate,
		WithholdingAmount:   in.WithholdingAmount,
		TotalAmount:         in.TotalAmount,
	}

	// Campos exclusivos de cada tipo: se descartan en el contrario.
	if kind == entity.KindExpense {
		rec.Deductible = in.Deductible
		rec.ExpenseIRPFCategory = in.ExpenseIRPFCategory
		rec.ExpenseVATCategory = in.ExpenseVATCategory
		if in.RegistrationDate != "" {
			regDate, err := time.Parse(dateLayout, in.RegistrationDate)
			if err != nil {
				return nil, fmt.Errorf("%w: registration_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
			}
			rec.RegistrationDate = &regDate
		}
	} else {
		rec.IncomeCategory = in.IncomeCategory
	}
	return rec, nil
}

func toResponse(r *entity.FiscalRecord) dto.RecordResponse {
	resp := dto.RecordResponse{
		ID:                  r.ID,
		Kind:                string(r.Kind),
		DocumentNumber:      r.DocumentNumber,
		IssueDate:           r.IssueDate.Format(dateLayout),
		CounterpartyTaxID:   r.CounterpartyTaxID,
		CounterpartyName:    r.CounterpartyName,
		CounterpartyAddress: r.CounterpartyAddress,
		TaxBase:             r.TaxBase,
		VATRate:             r.VATRate,
		VATAmount:           r.VATAmount,
		WithholdingRate:     r.WithholdingRate,
		WithholdingAmount:   r.WithholdingAmount,
		TotalAmount:         r.TotalAmount,
		Deductible:          r.Deductible,
		IncomeCategory:      r.IncomeCategory,
		ExpenseIRPFCategory: r.ExpenseIRPFCategory,
		ExpenseVATCategory:  r.ExpenseVATCategory,
	}
	if r.RegistrationDate != nil {
		resp.RegistrationDate = r.RegistrationDate.Format(dateLayout)
	}
	return resp
}
