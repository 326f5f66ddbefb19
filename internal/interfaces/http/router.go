package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/ai"
	"github.com/tu-usuario/autonomo-pro/internal/application/auth"
	"github.com/tu-usuario/autonomo-pro/internal/application/exports"
	"github.com/tu-usuario/autonomo-pro/internal/application/importer"
	"github.com/tu-usuario/autonomo-pro/internal/application/profile"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/application/reports"
)

// RouterDeps dependencias del router HTTP.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	RecordsUC *records.UseCase
	ReportsUC *reports.UseCase
	ExportsUC *exports.UseCase
	Importer  *importer.Importer
	AIUC      *ai.UseCase
	ProfileUC *profile.UseCase
	JWTSecret string
}

// Router registra todas las rutas de la API. Solo auth es pública; el
// resto exige el Bearer token del usuario único.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	recordHandler := NewRecordHandler(deps.RecordsUC)
	reportHandler := NewReportHandler(deps.ReportsUC)
	exportHandler := NewExportHandler(deps.ExportsUC)
	importHandler := NewImportHandler(deps.Importer)
	aiHandler := NewAIHandler(deps.AIUC)
	professionalHandler := NewProfessionalHandler(deps.ProfileUC)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	recordsGroup := protected.Group("/records")
	recordsGroup.Get("/next-number", recordHandler.NextNumber)
	recordsGroup.Post("/bulk-delete", recordHandler.BulkDelete)
	recordsGroup.Post("/", recordHandler.Create)
	recordsGroup.Get("/", recordHandler.List)
	recordsGroup.Get("/:id", recordHandler.GetByID)
	recordsGroup.Put("/:id", recordHandler.Update)
	recordsGroup.Delete("/:id", recordHandler.Delete)

	protected.Get("/taxid/validate", recordHandler.ValidateTaxID)

	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/303", reportHandler.Modelo303)
	reportsGroup.Get("/390", reportHandler.Modelo390)
	reportsGroup.Get("/130", reportHandler.Modelo130)
	reportsGroup.Get("/111", reportHandler.Modelo111)
	reportsGroup.Get("/347", reportHandler.Modelo347)
	reportsGroup.Get("/190", reportHandler.Modelo190)

	exportGroup := protected.Group("/export")
	exportGroup.Get("/book.csv", exportHandler.BookCSV)
	exportGroup.Get("/book.xlsx", exportHandler.BookXLSX)
	exportGroup.Get("/book.pdf", exportHandler.BookPDF)
	exportGroup.Get("/summary.pdf", exportHandler.SummaryPDF)
	exportGroup.Get("/facturae/:id", exportHandler.Facturae)

	protected.Post("/import", importHandler.Upload)

	aiGroup := protected.Group("/ai")
	aiGroup.Post("/extract", aiHandler.Extract)
	aiGroup.Post("/advise", aiHandler.Advise)

	protected.Get("/professional", professionalHandler.Get)
	protected.Put("/professional", professionalHandler.Save)
}
