// Package exports produce las descargas del libro: CSV, XLSX, PDF y Facturae.
package exports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
	"github.com/tu-usuario/autonomo-pro/internal/infrastructure/export"
)

// UseCase casos de uso de exportación. Todas las descargas se computan bajo
// demanda sobre el snapshot del libro; nada queda precalculado.
type UseCase struct {
	records      repository.FiscalRecordRepository
	professional repository.ProfessionalRepository
	pdf          ReportPDFGenerator
	facturae     FacturaeBuilder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	records repository.FiscalRecordRepository,
	professional repository.ProfessionalRepository,
	pdf ReportPDFGenerator,
	facturae FacturaeBuilder,
) *UseCase {
	return &UseCase{records: records, professional: professional, pdf: pdf, facturae: facturae}
}

// BookCSV exporta el libro del ejercicio (year=0 exporta todo).
func (uc *UseCase) BookCSV(ctx context.Context, year int) ([]byte, error) {
	records, err := uc.snapshot(ctx, year)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteBookCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BookXLSX exporta el libro del ejercicio más la hoja de modelos.
func (uc *UseCase) BookXLSX(ctx context.Context, year int) ([]byte, error) {
	records, err := uc.snapshot(ctx, year)
	if err != nil {
		return nil, err
	}
	var summary *aeat.FiscalSummary
	if year > 0 {
		all, err := uc.records.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("exports: snapshot del libro: %w", err)
		}
		s := aeat.Aggregate(all, year)
		summary = &s
	}
	var buf bytes.Buffer
	if err := export.WriteBookXLSX(&buf, records, summary); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SummaryPDF genera el PDF del resumen de modelos del ejercicio.
func (uc *UseCase) SummaryPDF(ctx context.Context, year int) ([]byte, error) {
	all, err := uc.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exports: snapshot del libro: %w", err)
	}
	prof, err := uc.professional.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.SummaryPDF(ctx, prof, aeat.Aggregate(all, year))
}

// BookPDF genera el PDF del libro registro del ejercicio.
func (uc *UseCase) BookPDF(ctx context.Context, year int) ([]byte, error) {
	records, err := uc.snapshot(ctx, year)
	if err != nil {
		return nil, err
	}
	prof, err := uc.professional.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.RecordBookPDF(ctx, prof, year, records)
}

// FacturaeXML genera el XML Facturae de una factura emitida.
func (uc *UseCase) FacturaeXML(ctx context.Context, recordID string) ([]byte, string, error) {
	rec, err := uc.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", domain.ErrNotFound
	}
	prof, err := uc.professional.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if prof == nil {
		return nil, "", fmt.Errorf("%w: rellene el perfil del profesional antes de generar Facturae", domain.ErrInvalidInput)
	}
	out, err := uc.facturae.Build(rec, prof)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return out, fmt.Sprintf("%s.xsig.xml", rec.DocumentNumber), nil
}

func (uc *UseCase) snapshot(ctx context.Context, year int) ([]entity.FiscalRecord, error) {
	all, err := uc.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exports: snapshot del libro: %w", err)
	}
	if year <= 0 {
		return all, nil
	}
	out := make([]entity.FiscalRecord, 0, len(all))
	for _, r := range all {
		if r.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}
