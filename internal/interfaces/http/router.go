package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Cobranza-api/internal/application/auth"
	"github.com/jhoicas/Cobranza-api/internal/application/clients"
	"github.com/jhoicas/Cobranza-api/internal/application/followups"
	"github.com/jhoicas/Cobranza-api/internal/application/reports"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *clients.UseCase
	Lifecycle *followups.Lifecycle
	ReportUC  *reports.UseCase
	JWTSecret string
	Log       *logger.Logger
	Metrics   *metrics.Metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestObserver(deps.Log, deps.Metrics))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token y rol de operador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleCobrador))

	reportHandler := NewReportHandler(deps.ReportUC)

	// Clients
	clientHandler := NewClientHandler(deps.ClientUC, deps.Lifecycle)
	cl := protected.Group("/clients")
	cl.Get("/", clientHandler.List)
	cl.Post("/", clientHandler.Create)
	cl.Get("/catalog", clientHandler.Catalog)
	cl.Get("/:id", clientHandler.GetByID)
	cl.Put("/:id", clientHandler.Update)
	cl.Get("/:id/followups", clientHandler.Followups)
	cl.Get("/:id/history", reportHandler.Cohort)

	// Followups
	followupHandler := NewFollowupHandler(deps.Lifecycle)
	fu := protected.Group("/followups")
	fu.Post("/", followupHandler.Save)
	fu.Get("/", reportHandler.Movements)
	fu.Get("/:id", followupHandler.GetByID)
	fu.Put("/:id", followupHandler.Update)
	fu.Delete("/:id", followupHandler.Delete)
	fu.Post("/:id/reopen", RequireRole(entity.RoleAdmin), followupHandler.Reopen)

	// Reports: /:kind/export antes que /history/:clientId
	rp := protected.Group("/reports")
	rp.Get("/dashboard", reportHandler.Dashboard)
	rp.Get("/:kind/export", reportHandler.Export)
	rp.Get("/history/:clientId", reportHandler.Cohort)
	rp.Get("/:kind", reportHandler.Cohort)
}
