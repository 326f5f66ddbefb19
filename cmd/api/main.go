package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appai "github.com/tu-usuario/autonomo-pro/internal/application/ai"
	"github.com/tu-usuario/autonomo-pro/internal/application/auth"
	"github.com/tu-usuario/autonomo-pro/internal/application/exports"
	"github.com/tu-usuario/autonomo-pro/internal/application/importer"
	"github.com/tu-usuario/autonomo-pro/internal/application/ports"
	"github.com/tu-usuario/autonomo-pro/internal/application/profile"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/application/reports"
	infraai "github.com/tu-usuario/autonomo-pro/internal/infrastructure/ai"
	"github.com/tu-usuario/autonomo-pro/internal/infrastructure/facturae"
	infrapdf "github.com/tu-usuario/autonomo-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/autonomo-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/autonomo-pro/internal/interfaces/http"
	"github.com/tu-usuario/autonomo-pro/pkg/config"
	"github.com/tu-usuario/autonomo-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	recordRepo := postgres.NewFiscalRecordRepository(pool)
	professionalRepo := postgres.NewProfessionalRepository(pool)

	recordsUC := records.NewUseCase(recordRepo)
	reportsUC := reports.NewUseCase(recordRepo)
	profileUC := profile.NewUseCase(professionalRepo)
	importUC := importer.New(recordsUC)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	facturaeBuilder := facturae.NewXMLBuilderService()
	exportsUC := exports.NewUseCase(recordRepo, professionalRepo, pdfGenerator, facturaeBuilder)

	// Proveedor de IA configurable; sin proveedor, los endpoints de IA
	// responden con error de validación en lugar de impedir el arranque.
	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "anthropic":
		llm = infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)
	default:
		log.Warn().Str("provider", cfg.AI.Provider).Msg("IA desactivada: AI_PROVIDER no configurado")
		llm = infraai.NewDisabledService()
	}
	aiUC := appai.NewUseCase(llm, recordsUC)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Autónomo Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		RecordsUC: recordsUC,
		ReportsUC: reportsUC,
		ExportsUC: exportsUC,
		Importer:  importUC,
		AIUC:      aiUC,
		ProfileUC: profileUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
