// Package reports contiene los casos de uso de los modelos tributarios: el
// dashboard del ejercicio y los seis modelos a granularidad trimestral y
// anual. Todo se computa bajo demanda sobre el snapshot completo del libro.
package reports

import (
	"context"
	"fmt"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
)

// UseCase casos de uso de informes fiscales.
type UseCase struct {
	repo repository.FiscalRecordRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FiscalRecordRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Summary dashboard completo del ejercicio (los seis modelos).
func (uc *UseCase) Summary(ctx context.Context, year int) (*dto.FiscalSummaryDTO, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	s := aeat.Aggregate(records, year)

	out := &dto.FiscalSummaryDTO{
		Year:       year,
		M303Annual: to303(s.M303Annual),
		M390:       to390(s.M390),
		M130Annual: to130(s.M130Annual),
		M111Annual: to111(s.M111Annual),
		M347:       to347(s.M347),
		M190:       to190(s.M190),
	}
	for q := 0; q < 4; q++ {
		out.M303Quarters = append(out.M303Quarters, to303(s.M303Quarters[q]))
		out.M130Quarters = append(out.M130Quarters, to130(s.M130Quarters[q]))
		out.M111Quarters = append(out.M111Quarters, to111(s.M111Quarters[q]))
	}
	return out, nil
}

// Modelo303 liquidación de IVA: trimestral si quarter es 1..4, anual si 0.
func (uc *UseCase) Modelo303(ctx context.Context, year, quarter int) (*dto.Modelo303DTO, error) {
	records, err := uc.snapshotPeriod(ctx, quarter)
	if err != nil {
		return nil, err
	}
	var m aeat.Modelo303
	if quarter == 0 {
		m = aeat.Modelo303Annual(records, year)
	} else {
		m = aeat.Modelo303Quarter(records, year, quarter)
	}
	out := to303(m)
	return &out, nil
}

// Modelo390 resumen anual de IVA con desglose por tipo.
func (uc *UseCase) Modelo390(ctx context.Context, year int) (*dto.Modelo390DTO, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := to390(aeat.Modelo390Annual(records, year))
	return &out, nil
}

// Modelo130 pago fraccionado de IRPF: trimestral o anual.
func (uc *UseCase) Modelo130(ctx context.Context, year, quarter int) (*dto.Modelo130DTO, error) {
	records, err := uc.snapshotPeriod(ctx, quarter)
	if err != nil {
		return nil, err
	}
	var m aeat.Modelo130
	if quarter == 0 {
		m = aeat.Modelo130Annual(records, year)
	} else {
		m = aeat.Modelo130Quarter(records, year, quarter)
	}
	out := to130(m)
	return &out, nil
}

// Modelo111 retenciones practicadas: trimestral o anual.
func (uc *UseCase) Modelo111(ctx context.Context, year, quarter int) (*dto.Modelo111DTO, error) {
	records, err := uc.snapshotPeriod(ctx, quarter)
	if err != nil {
		return nil, err
	}
	var m aeat.Modelo111
	if quarter == 0 {
		m = aeat.Modelo111Annual(records, year)
	} else {
		m = aeat.Modelo111Quarter(records, year, quarter)
	}
	out := to111(m)
	return &out, nil
}

// Modelo347 operaciones con terceros (solo anual).
func (uc *UseCase) Modelo347(ctx context.Context, year int) (*dto.Modelo347DTO, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := to347(aeat.Modelo347Annual(records, year))
	return &out, nil
}

// Modelo190 retenciones soportadas (solo anual).
func (uc *UseCase) Modelo190(ctx context.Context, year int) (*dto.Modelo190DTO, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := to190(aeat.Modelo190Annual(records, year))
	return &out, nil
}

func (uc *UseCase) snapshot(ctx context.Context) ([]entity.FiscalRecord, error) {
	records, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: snapshot del libro: %w", err)
	}
	return records, nil
}

func (uc *UseCase) snapshotPeriod(ctx context.Context, quarter int) ([]entity.FiscalRecord, error) {
	if quarter < 0 || quarter > 4 {
		return nil, fmt.Errorf("%w: quarter debe ser 1..4 (0 = anual)", domain.ErrInvalidInput)
	}
	return uc.snapshot(ctx)
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func to303(m aeat.Modelo303) dto.Modelo303DTO {
	return dto.Modelo303DTO{
		Year: m.Year, Quarter: m.Quarter,
		OutputVAT: m.OutputVAT, InputVAT: m.InputVAT, Result: m.Result,
	}
}

func to390(m aeat.Modelo390) dto.Modelo390DTO {
	out := dto.Modelo390DTO{
		Year: m.Year, OutputVAT: m.OutputVAT, InputVAT: m.InputVAT, Result: m.Result,
		Breakdown: make([]dto.VATBreakdownDTO, 0, len(m.Breakdown)),
	}
	for _, b := range m.Breakdown {
		out.Breakdown = append(out.Breakdown, dto.VATBreakdownDTO{
			Rate: b.Rate, TaxBase: b.TaxBase, VATAmount: b.VATAmount,
		})
	}
	return out
}

func to130(m aeat.Modelo130) dto.Modelo130DTO {
	return dto.Modelo130DTO{
		Year: m.Year, Quarter: m.Quarter,
		Income: m.Income, DeductibleExpenses: m.DeductibleExpenses,
		NetYield: m.NetYield, TheoreticalQuota: m.TheoreticalQuota,
		WithholdingSuffered: m.WithholdingSuffered, Result: m.Result,
	}
}

func to111(m aeat.Modelo111) dto.Modelo111DTO {
	return dto.Modelo111DTO{Year: m.Year, Quarter: m.Quarter, Withheld: m.Withheld}
}

func to347(m aeat.Modelo347) dto.Modelo347DTO {
	out := dto.Modelo347DTO{Year: m.Year, Operations: make([]dto.Operation347DTO, 0, len(m.Operations))}
	for _, op := range m.Operations {
		out.Operations = append(out.Operations, dto.Operation347DTO{
			TaxID: op.TaxID, Name: op.Name, Total: op.Total, Kind: string(op.Kind),
		})
	}
	return out
}

func to190(m aeat.Modelo190) dto.Modelo190DTO {
	out := dto.Modelo190DTO{Year: m.Year, Recipients: make([]dto.Recipient190DTO, 0, len(m.Recipients))}
	for _, r := range m.Recipients {
		out.Recipients = append(out.Recipients, dto.Recipient190DTO{
			TaxID: r.TaxID, Name: r.Name, TaxBase: r.TaxBase, Withheld: r.Withheld,
		})
	}
	return out
}
