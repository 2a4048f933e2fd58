package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/dentalperu/inventario-dental/internal/application/analytics"
	"github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/application/notification"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	infracatalog "github.com/dentalperu/inventario-dental/internal/infrastructure/catalog"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/excel"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/memory"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/pdf"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/whatsapp"
	apphttp "github.com/dentalperu/inventario-dental/internal/interfaces/http"
	pkgjwt "github.com/dentalperu/inventario-dental/pkg/jwt"
	"github.com/dentalperu/inventario-dental/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el ledger en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newAPI(t *testing.T) (*fiber.App, *memory.Ledger) {
	t.Helper()
	l := memory.NewLedger()
	issuer := entity.Company{Name: "Dental Perú S.A.C.", RUC: "20601234567"}

	valuation := inventory.NewValuationUseCase(l, l.Movements(), l.Snapshots())
	report := inventory.NewReportUseCase(l, l.Snapshots(), valuation)
	gen := pdf.NewMarotoPDFGenerator()
	expiry := inventory.NewExpiryUseCase(l.Lots())
	alerts := notification.NewAlertUseCase(whatsapp.NewDisabledNotifier(logger.Nop()), "51999888777")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:          "inventario-dental-test",
		Products:         catalog.NewProductUseCase(l),
		Import:           catalog.NewImportUseCase(l).WithReader(".csv", infracatalog.ReadCSV).WithReader(".xlsx", excel.ReadCatalog),
		RegisterMovement: inventory.NewRegisterMovementUseCase(l, alerts),
		Valuation:        valuation,
		Report:           report,
		Export:           inventory.NewExportUseCase(report, gen, excel.NewReportSheet(), issuer),
		Expiry:           expiry,
		Lots:             inventory.NewLotUseCase(l.Lots(), l),
		Replenishment:    inventory.NewReplenishmentUseCase(l),
		Alerts:           alerts,
		CreateInvoice:    billing.NewCreateInvoiceUseCase(l, l, gen, alerts, issuer),
		Dashboard:        appanalytics.NewDashboardUseCase(l, l.Movements(), expiry, 30),
		JWTSecret:        testJWTSecret,
	})
	return app, l
}

func seed(t *testing.T, l *memory.Ledger, code, name string, stock, min int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Code: code, Name: name, Category: entity.CategoryConsumible,
		Stock: stock, MinStock: min, UnitPrice: decimal.RequireFromString(price),
		Supplier: "Dental Import SAC", DeliveryDays: 3, Active: true,
	}
	require.NoError(t, l.Create(context.Background(), p))
	return p
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type lotsBody struct {
	Total int                  `json:"total"`
	Lots  []dto.ExpiringLotDTO `json:"lots"`
}

type reordersBody struct {
	Total    int                        `json:"total"`
	Reorders []dto.ReorderSuggestionDTO `json:"reorders"`
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "inventario-dental-test", body["service"])
}

func TestRegisterMovement_API(t *testing.T) {
	app, l := newAPI(t)
	p := seed(t, l, "RES-001", "Resina Flow", 0, 5, "5.00")
	req := dto.RegisterMovementRequest{ProductID: p.ID, Type: "entrada", Quantity: 10, UnitPrice: decimal.RequireFromString("5.00")}

	t.Run("sin token", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", "", req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("vendedor no registra movimientos", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleVendedor, req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("almacen registra", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleAlmacen, req)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		out := decode[dto.MovementResponse](t, resp)
		assert.Equal(t, int64(10), out.StockAfter)
		assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("50")))
	})

	t.Run("cantidad inválida", func(t *testing.T) {
		bad := req
		bad.Quantity = 0
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleAdmin, bad)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION", body.Code)
		assert.Equal(t, "validation", body.Kind)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		missing := req
		missing.ProductID = "no-existe"
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleAdmin, missing)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("stock consistente", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/products/"+p.ID+"/stock", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[dto.CurrentStockDTO](t, resp)
		assert.Equal(t, int64(10), out.ComputedStock)
		assert.True(t, out.Consistent)
	})

	assert.Equal(t, 1, l.MovementCount())
}

func TestValuation_API(t *testing.T) {
	app, l := newAPI(t)
	p := seed(t, l, "RES-001", "Resina Flow", 7, 5, "5.00")
	ctx := context.Background()
	require.NoError(t, l.Movements().Create(ctx, entity.NewMovement(p.ID, entity.MovementEntrada, 10,
		decimal.RequireFromString("5.00"), time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local))))
	require.NoError(t, l.Movements().Create(ctx, entity.NewMovement(p.ID, entity.MovementSalida, 3,
		decimal.RequireFromString("5.00"), time.Date(2024, time.March, 20, 9, 0, 0, 0, time.Local))))

	resp := call(t, app, http.MethodGet, "/api/products/"+p.ID+"/valuation?month=3&year=2024", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MonthlyValuationDTO](t, resp)
	assert.Equal(t, int64(7), out.ClosingStock)
	assert.True(t, out.ClosingValue.Equal(decimal.RequireFromString("35")))

	resp = call(t, app, http.MethodGet, "/api/products/"+p.ID+"/valuation?month=13&year=2024", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/"+p.ID+"/valuation?month=marzo", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Reporte y exportaciones del mismo mes.
	resp = call(t, app, http.MethodGet, "/api/reports/monthly?month=3&year=2024", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.MonthlyReportDTO](t, resp)
	require.Len(t, report.Lines, 1)
	assert.True(t, report.TotalClosing.Equal(decimal.RequireFromString("35")))

	resp = call(t, app, http.MethodGet, "/api/reports/monthly/pdf?month=3&year=2024", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_existencias_2024_03.pdf")
	b, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/reports/monthly/xlsx?month=3&year=2024", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, inventory.ContentTypeXLSX, resp.Header.Get("Content-Type"))

	// Cierre de mes: solo admin.
	closeReq := dto.CloseMonthRequest{Month: 3, Year: 2024}
	resp = call(t, app, http.MethodPost, "/api/reports/monthly/close", pkgjwt.RoleAlmacen, closeReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/reports/monthly/close", pkgjwt.RoleAdmin, closeReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	closed := decode[dto.CloseMonthResponse](t, resp)
	assert.Equal(t, 1, closed.SnapshotsSaved)

	// Abril parte del cierre de marzo.
	resp = call(t, app, http.MethodGet, "/api/products/"+p.ID+"/valuation?month=4&year=2024", "", nil)
	april := decode[dto.MonthlyValuationDTO](t, resp)
	assert.Equal(t, int64(7), april.OpeningStock)
}

func TestLots_API(t *testing.T) {
	app, l := newAPI(t)
	p := seed(t, l, "ANE-002", "Anestesia Lidocaína 2%", 20, 10, "3.20")
	expiry := time.Now().AddDate(0, 0, 10).Format(time.DateOnly)

	resp := call(t, app, http.MethodPost, "/api/lots", pkgjwt.RoleAlmacen, dto.RegisterLotRequest{
		ProductID: p.ID, LotNumber: "L-2024-01", ExpiryDate: expiry, Quantity: 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/lots", pkgjwt.RoleAlmacen, dto.RegisterLotRequest{
		ProductID: p.ID, LotNumber: "L-2024-01", ExpiryDate: expiry, Quantity: 5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/lots", pkgjwt.RoleAlmacen, dto.RegisterLotRequest{
		ProductID: p.ID, LotNumber: "L-2024-02", ExpiryDate: "31/12/2024", Quantity: 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/lots/expiring?days=30", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[lotsBody](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, 10, body.Lots[0].DaysRemaining)

	resp = call(t, app, http.MethodGet, "/api/lots/expiring?days=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/lots/expiring?include_expired=quizas", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReorders_API(t *testing.T) {
	app, l := newAPI(t)
	seed(t, l, "GNT-003", "Guantes de Nitrilo", 2, 50, "28.00")
	seed(t, l, "RES-001", "Resina Flow", 10, 5, "45.50")

	resp := call(t, app, http.MethodGet, "/api/reorders", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[reordersBody](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, int64(48), body.Reorders[0].SuggestedQty)

	// WhatsApp deshabilitado en pruebas.
	resp = call(t, app, http.MethodPost, "/api/reorders/send", pkgjwt.RoleAdmin, dto.SendOrderRequest{Phone: "+51 988 777 666"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/reorders/send", pkgjwt.RoleAdmin, dto.SendOrderRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoice_API(t *testing.T) {
	app, l := newAPI(t)
	p := seed(t, l, "RES-001", "Resina Flow", 10, 5, "45.50")

	req := dto.CreateInvoiceRequest{
		Customer: dto.CustomerRequest{DocType: "RUC", DocNumber: "20512345678", Name: "Clínica Sonrisa"},
		Items:    []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 2}},
	}
	resp := call(t, app, http.MethodPost, "/api/invoices", pkgjwt.RoleAlmacen, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/invoices", pkgjwt.RoleVendedor, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "F001-00000001", resp.Header.Get("X-Invoice-Number"))
	assert.Equal(t, "107.38", resp.Header.Get("X-Invoice-Total"))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	got, err := l.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.Stock)

	req.Customer.DocNumber = "123"
	resp = call(t, app, http.MethodPost, "/api/invoices", pkgjwt.RoleVendedor, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, l.InvoiceCount())
}

func TestProducts_API(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/products", pkgjwt.RoleAdmin, dto.CreateProductRequest{
		Code: "RES-001", Name: "Resina Flow", Category: "resina", MinStock: 5,
		UnitPrice: decimal.RequireFromString("45.50"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/products", pkgjwt.RoleAdmin, dto.CreateProductRequest{Code: "RES-001", Name: "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Importación CSV multipart.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "catalogo.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("codigo,nombre,categoria,stock_minimo,precio\nRES-001,Resina Flow,resina,5,45.50\nGNT-003,Guantes de Nitrilo,consumible,50,28.00\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleAdmin))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[dto.ImportResult](t, resp)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, []string{"RES-001"}, result.Skipped)

	resp = call(t, app, http.MethodGet, "/api/products", "", nil)
	list := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 2, list.Total)
}

func TestDashboard_API(t *testing.T) {
	app, l := newAPI(t)
	seed(t, l, "GNT-003", "Guantes de Nitrilo", 2, 50, "28.00")

	resp := call(t, app, http.MethodGet, "/api/dashboard", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 1, out.LowStockCount)
	assert.True(t, out.InventoryValue.Equal(decimal.RequireFromString("56")))
	assert.Equal(t, 30, out.ExpiryWindowDays)
}
