// Package http expone la API REST del inventario con Fiber.
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/dentalperu/inventario-dental/internal/application/analytics"
	"github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/application/notification"
	"github.com/dentalperu/inventario-dental/pkg/jwt"
)

// now reloj para los valores por defecto de mes y año.
var now = time.Now

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	Products         *catalog.ProductUseCase
	Import           *catalog.ImportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Valuation        *inventory.ValuationUseCase
	Report           *inventory.ReportUseCase
	Export           *inventory.ExportUseCase
	Expiry           *inventory.ExpiryUseCase
	Lots             *inventory.LotUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Alerts           *notification.AlertUseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	Dashboard        *appanalytics.DashboardUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Las consultas son públicas; las escrituras
// requieren Bearer Token y rol.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)
	stockRoles := RequireRole(jwt.RoleAdmin, jwt.RoleAlmacen)
	salesRoles := RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)
	adminOnly := RequireRole(jwt.RoleAdmin)

	api.Get("/dashboard", NewDashboardHandler(deps.Dashboard).GetSummary)

	// Productos
	productHandler := NewProductHandler(deps.Products, deps.Import)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Valuation)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", auth, adminOnly, productHandler.Create)
	products.Post("/import", auth, adminOnly, productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/valuation", inventoryHandler.GetValuation)
	products.Get("/:id/stock", inventoryHandler.GetStock)

	// Movimientos
	api.Post("/inventory/movements", auth, stockRoles, inventoryHandler.RegisterMovement)

	// Reportes
	reportHandler := NewReportHandler(deps.Report, deps.Export)
	reports := api.Group("/reports/monthly")
	reports.Get("/", reportHandler.Monthly)
	reports.Get("/pdf", reportHandler.MonthlyPDF)
	reports.Get("/xlsx", reportHandler.MonthlyXLSX)
	reports.Post("/close", auth, adminOnly, reportHandler.Close)

	// Lotes
	lotHandler := NewLotHandler(deps.Lots, deps.Expiry)
	api.Get("/lots/expiring", lotHandler.Expiring)
	api.Post("/lots", auth, stockRoles, lotHandler.Register)

	// Reposición
	reorderHandler := NewReorderHandler(deps.Replenishment, deps.Alerts)
	api.Get("/reorders", reorderHandler.List)
	api.Post("/reorders/send", auth, adminOnly, reorderHandler.Send)

	// Facturas
	api.Post("/invoices", auth, salesRoles, NewInvoiceHandler(deps.CreateInvoice).Create)
}
