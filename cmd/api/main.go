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

	appanalytics "github.com/dentalperu/inventario-dental/internal/application/analytics"
	"github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/application/notification"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	infracatalog "github.com/dentalperu/inventario-dental/internal/infrastructure/catalog"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/excel"
	infrapdf "github.com/dentalperu/inventario-dental/internal/infrastructure/pdf"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/scheduler"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/whatsapp"
	httpRouter "github.com/dentalperu/inventario-dental/internal/interfaces/http"
	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/logger"
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
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	issuer := entity.Company{
		Name:    cfg.Company.Name,
		RUC:     cfg.Company.RUC,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
	}

	// Notificaciones: WhatsApp Cloud API o modo deshabilitado (solo log)
	notifier := whatsapp.NewNotifier(cfg.WhatsApp, log.Component("whatsapp"))
	alertUC := notification.NewAlertUseCase(notifier, cfg.WhatsApp.AdminPhone)

	valuationUC := inventory.NewValuationUseCase(st.products, st.movements, st.snapshots)
	reportUC := inventory.NewReportUseCase(st.products, st.snapshots, valuationUC)
	expiryUC := inventory.NewExpiryUseCase(st.lots)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.products)
	registerMovementUC := inventory.NewRegisterMovementUseCase(st.tx, alertUC)
	lotUC := inventory.NewLotUseCase(st.lots, st.products)

	// PDF (maroto) y XLSX (excelize)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	exportUC := inventory.NewExportUseCase(reportUC, pdfGenerator, excel.NewReportSheet(), issuer)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(st.tx, st.products, pdfGenerator, alertUC, issuer)

	productUC := catalog.NewProductUseCase(st.products)
	importUC := catalog.NewImportUseCase(st.products).
		WithReader(".csv", infracatalog.ReadCSV).
		WithReader(".xlsx", excel.ReadCatalog)
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.movements, expiryUC, cfg.Alerts.ExpiryDays)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Dental API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		Products:         productUC,
		Import:           importUC,
		RegisterMovement: registerMovementUC,
		Valuation:        valuationUC,
		Report:           reportUC,
		Export:           exportUC,
		Expiry:           expiryUC,
		Lots:             lotUC,
		Replenishment:    replenishmentUC,
		Alerts:           alertUC,
		CreateInvoice:    createInvoiceUC,
		Dashboard:        dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Alertas diarias y cierre mensual
	sched := scheduler.New(cfg.Alerts, expiryUC, replenishmentUC, alertUC, reportUC, log.Component("scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

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

	sched.Stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
