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

	"github.com/jhoicas/Cobranza-api/internal/application/auth"
	"github.com/jhoicas/Cobranza-api/internal/application/clients"
	"github.com/jhoicas/Cobranza-api/internal/application/followups"
	"github.com/jhoicas/Cobranza-api/internal/application/reports"
	infrapdf "github.com/jhoicas/Cobranza-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cobranza-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cobranza-api/internal/interfaces/http"
	"github.com/jhoicas/Cobranza-api/pkg/config"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	m := metrics.New(cfg.Metrics.Prefix)

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	followupRepo := postgres.NewFollowupRepository(pool, m)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := clients.NewUseCase(clientRepo, log)
	lifecycle := followups.NewLifecycle(followupRepo, clientRepo, log, m)

	// Exportación: texto delimitado y PDF tabular de cada cohorte
	exporter := reports.NewExporter(reports.ExportOptions{
		Delimiter:   cfg.Export.Delimiter,
		Placeholder: cfg.Export.Placeholder,
		Legacy:      cfg.Export.Legacy,
	})
	pdfGenerator := infrapdf.NewCohortPDFGenerator(cfg.App.Name)
	reportUC := reports.NewUseCase(followupRepo, clientRepo, exporter, pdfGenerator, log, m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cobranza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		Lifecycle: lifecycle,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
		Metrics:   m,
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
