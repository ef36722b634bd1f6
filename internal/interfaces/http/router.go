package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jose29di/sisinventario/internal/application/counting"
	"github.com/jose29di/sisinventario/internal/application/export"
	"github.com/jose29di/sisinventario/internal/application/report"
	"github.com/jose29di/sisinventario/internal/application/session"
	appsync "github.com/jose29di/sisinventario/internal/application/sync"
	"github.com/jose29di/sisinventario/internal/infrastructure/backup"
	"github.com/jose29di/sisinventario/pkg/config"
	"github.com/jose29di/sisinventario/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC *session.UseCase
	CountUC   *counting.UseCase
	ReportUC  *report.UseCase
	ExportUC  *export.UseCase
	Scheduler *appsync.Scheduler
	Backups   *backup.Manager
	Auth      config.AuthConfig
	JWT       config.JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Métricas Prometheus (registry propio, sin auth: scrape interno)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.JWT)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Sesiones de corte
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:session_id", sessionHandler.GetByID)
	sessions.Put("/:session_id/stock", sessionHandler.RefreshStock)
	sessions.Delete("/:session_id", RequireRole("admin"), sessionHandler.Deactivate)

	// Conteos
	countHandler := NewCountHandler(deps.CountUC)
	sessions.Post("/:session_id/counts", countHandler.Submit)
	sessions.Post("/:session_id/counts/resolve", countHandler.Resolve)
	sessions.Post("/:session_id/items", countHandler.CreateExtraItem)

	// Avance y búsqueda
	reportHandler := NewReportHandler(deps.ReportUC, deps.Scheduler)
	sessions.Get("/:session_id/snapshot", reportHandler.Snapshot)
	sessions.Post("/:session_id/refresh", reportHandler.Refresh)
	sessions.Get("/:session_id/kpi", reportHandler.KPI)
	sessions.Get("/:session_id/lines", reportHandler.Lines)
	sessions.Get("/:session_id/items/search", reportHandler.Search)

	// Exportación
	exportHandler := NewExportHandler(deps.ExportUC)
	sessions.Get("/:session_id/export", exportHandler.Export)

	// Equipos
	teams := protected.Group("/teams")
	teamHandler := NewTeamHandler(deps.SessionUC)
	teams.Post("/", teamHandler.Create)
	teams.Post("/import", teamHandler.Import)
	teams.Get("/", teamHandler.List)
	teams.Delete("/:id", RequireRole("admin"), teamHandler.Deactivate)

	// Respaldos (solo admin: restaurar pisa la base)
	backups := protected.Group("/backups", RequireRole("admin"))
	backupHandler := NewBackupHandler(deps.Backups)
	backups.Post("/", backupHandler.Create)
	backups.Get("/", backupHandler.List)
	backups.Post("/:name/restore", backupHandler.Restore)
	backups.Delete("/:name", backupHandler.Delete)
}
