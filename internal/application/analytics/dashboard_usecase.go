// Package analytics contiene el caso de uso del tablero principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// dashboardMonths meses de movimientos que muestra el gráfico (incluye el mes en curso).
const dashboardMonths = 6

// DashboardUseCase resume el estado del inventario: faltantes, valor, vencimientos y movimientos.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	expiry      *inventory.ExpiryUseCase
	expiryDays  int
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. expiryDays <= 0 usa la ventana por defecto.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	expiry *inventory.ExpiryUseCase,
	expiryDays int,
) *DashboardUseCase {
	if expiryDays <= 0 {
		expiryDays = inventory.DefaultExpiryDays
	}
	return &DashboardUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		expiry:      expiry,
		expiryDays:  expiryDays,
		now:         time.Now,
	}
}

// GetSummary arma el DashboardDTO.
//
// Tres consultas en paralelo:
//  1. ListActive              → LowStockCount + InventoryValue (Σ stock × precio)
//  2. FindExpiringLots        → ExpiringLotsCount
//  3. TotalsByMonth(6 meses)  → MonthlyMovements
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	now := uc.now()
	current := entity.PeriodOf(now)
	_, to := current.Bounds(now.Location())
	from := to.AddDate(0, -dashboardMonths, 0)

	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type lotsResult struct {
		count int
		err   error
	}
	type totalsResult struct {
		totals []repository.MovementTotal
		err    error
	}

	productsCh := make(chan productsResult, 1)
	lotsCh := make(chan lotsResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		products, err := uc.productRepo.ListActive(ctx)
		productsCh <- productsResult{products, err}
	}()
	go func() {
		lots, err := uc.expiry.FindExpiringLots(ctx, uc.expiryDays, false)
		lotsCh <- lotsResult{len(lots), err}
	}()
	go func() {
		totals, err := uc.movRepo.TotalsByMonth(ctx, from, to)
		totalsCh <- totalsResult{totals, err}
	}()

	products := <-productsCh
	lots := <-lotsCh
	totals := <-totalsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if lots.err != nil {
		return nil, fmt.Errorf("dashboard: vencimientos: %w", lots.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", totals.err)
	}

	out := &dto.DashboardDTO{
		InventoryValue:    decimal.Zero,
		ExpiringLotsCount: lots.count,
		ExpiryWindowDays:  uc.expiryDays,
		MonthlyMovements:  make([]dto.MovementTotalDTO, 0, len(totals.totals)),
		DateLabel:         current.Label(),
	}
	for _, p := range products.products {
		if p.BelowMinimum() {
			out.LowStockCount++
		}
		out.InventoryValue = out.InventoryValue.Add(p.StockValue())
	}
	for _, t := range totals.totals {
		out.MonthlyMovements = append(out.MonthlyMovements, dto.MovementTotalDTO{
			Month:    fmt.Sprintf("%04d-%02d", t.Period.Year, t.Period.Month),
			Type:     string(t.Kind),
			Quantity: t.Quantity,
			Total:    t.Total,
		})
	}
	return out, nil
}
