package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/tu-usuario/bodega-pro/internal/application/analytics"
	"github.com/tu-usuario/bodega-pro/internal/application/auth"
	"github.com/tu-usuario/bodega-pro/internal/application/reports"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	infrapdf "github.com/tu-usuario/bodega-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/bodega-pro/internal/infrastructure/postgres"
	infraxlsx "github.com/tu-usuario/bodega-pro/internal/infrastructure/xlsx"
	httpRouter "github.com/tu-usuario/bodega-pro/internal/interfaces/http"
	"github.com/tu-usuario/bodega-pro/pkg/config"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
	"github.com/tu-usuario/bodega-pro/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	accountRepo := postgres.NewAccountRepository(pool)
	gateway := store.Gateway{
		Products:  postgres.NewProductRepository(pool),
		Suppliers: postgres.NewSupplierRepository(pool),
		Receipts:  postgres.NewStockReceiptRepository(pool),
		Transfers: postgres.NewStockTransferRepository(pool),
		Profiles:  postgres.NewProfileRepository(pool),
		Tx:        postgres.NewTxRunner(pool),
	}

	st := store.New(gateway, store.NewNotificationCenter(50), log)
	// Sin snapshot inicial no hay aplicación: el arranque falla explícito.
	if err := st.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del snapshot")
	}

	authUC := auth.NewUsecase(accountRepo, st, cfg.JWT, log)
	dashboardUC := analytics.NewDashboardUsecase(st)
	reportUC := reports.NewUsecase(st,
		infrapdf.NewMarotoReportGenerator(),
		infraxlsx.NewExcelizeReportGenerator(),
	)

	// Refresco periódico del snapshot, por si otra instancia (o el DBA)
	// escribe directo en las tablas.
	scheduler := cron.New()
	if mins := cfg.Refresh.IntervalMinutes; mins > 0 {
		spec := "@every " + (time.Duration(mins) * time.Minute).String()
		if _, err := scheduler.AddFunc(spec, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := st.Refresh(refreshCtx); err != nil {
				log.Error().Err(err).Msg("refresco programado del snapshot")
			}
		}); err != nil {
			log.Fatal().Err(err).Msg("programar refresco del snapshot")
		}
		scheduler.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:       st,
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
