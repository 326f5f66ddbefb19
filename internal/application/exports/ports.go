package exports

import (
	"context"

	"github.com/tu-usuario/autonomo-pro/internal/domain/aeat"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// ReportPDFGenerator puerto de salida para los PDFs del ejercicio.
type ReportPDFGenerator interface {
	SummaryPDF(ctx context.Context, professional *entity.Professional, summary aeat.FiscalSummary) ([]byte, error)
	RecordBookPDF(ctx context.Context, professional *entity.Professional, year int, records []entity.FiscalRecord) ([]byte, error)
}

// FacturaeBuilder puerto de salida para el XML Facturae de una factura emitida.
type FacturaeBuilder interface {
	Build(record *entity.FiscalRecord, professional *entity.Professional) ([]byte, error)
}
