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

	"github.com/jose29di/sisinventario/internal/application/counting"
	"github.com/jose29di/sisinventario/internal/application/export"
	"github.com/jose29di/sisinventario/internal/application/report"
	appsession "github.com/jose29di/sisinventario/internal/application/session"
	appsync "github.com/jose29di/sisinventario/internal/application/sync"
	"github.com/jose29di/sisinventario/internal/infrastructure/backup"
	"github.com/jose29di/sisinventario/internal/infrastructure/postgres"
	httpRouter "github.com/jose29di/sisinventario/internal/interfaces/http"
	"github.com/jose29di/sisinventario/pkg/config"
	"github.com/jose29di/sisinventario/pkg/logger"
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	sessionRepo := postgres.NewSessionRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sessionUC := appsession.NewUseCase(txRunner, sessionRepo, teamRepo)
	countUC := counting.NewUseCase(itemRepo, movementRepo, teamRepo, sessionRepo, cfg.Sync.OpTimeout())
	reportUC := report.NewUseCase(reportRepo, movementRepo, sessionRepo, itemRepo)
	exportUC := export.NewUseCase(sessionRepo, itemRepo, movementRepo, teamRepo, reportUC)

	scheduler := appsync.New(
		reportUC, sessionRepo,
		cfg.Sync.Interval(), cfg.Sync.JoinTimeout(),
		log.Component("scheduler"),
	)
	scheduler.Start()

	backups, err := backup.NewManager(cfg.Backup, cfg.DB, log.Component("backup"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar respaldos")
	}

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
		Title:    "Sisinventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC: sessionUC,
		CountUC:   countUC,
		ReportUC:  reportUC,
		ExportUC:  exportUC,
		Scheduler: scheduler,
		Backups:   backups,
		Auth:      cfg.Auth,
		JWT:       cfg.JWT,
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

	scheduler.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
