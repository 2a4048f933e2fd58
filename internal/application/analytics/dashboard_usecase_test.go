package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalperu/inventario-dental/internal/application/analytics"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/memory"
)

func seed(t *testing.T, l *memory.Ledger, code string, stock, min int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{Code: code, Name: code, Stock: stock, MinStock: min, UnitPrice: decimal.RequireFromString(price), Active: true}
	require.NoError(t, l.Create(context.Background(), p))
	return p
}

func newDashboard(l *memory.Ledger) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(l, l.Movements(), inventory.NewExpiryUseCase(l.Lots()), 0)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	l := memory.NewLedger()
	resina := seed(t, l, "RES-001", 3, 10, "85.50")
	seed(t, l, "GNT-003", 100, 20, "1.20")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	require.NoError(t, l.Lots().Create(ctx, &entity.Lot{ProductID: resina.ID, LotNumber: "L1", ExpiryDate: today.AddDate(0, 0, 5), Quantity: 1}))
	require.NoError(t, l.Lots().Create(ctx, &entity.Lot{ProductID: resina.ID, LotNumber: "L2", ExpiryDate: today.AddDate(0, 0, 60), Quantity: 1}))

	require.NoError(t, l.Movements().Create(ctx, entity.NewMovement(resina.ID, entity.MovementEntrada, 4, decimal.RequireFromString("85.50"), now)))
	require.NoError(t, l.Movements().Create(ctx, entity.NewMovement(resina.ID, entity.MovementSalida, 1, decimal.RequireFromString("85.50"), now)))
	require.NoError(t, l.Movements().Create(ctx, entity.NewMovement(resina.ID, entity.MovementEntrada, 9, decimal.RequireFromString("85.50"), now.AddDate(-1, 0, 0))))

	got, err := newDashboard(l).GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, got.LowStockCount)
	assert.True(t, got.InventoryValue.Equal(decimal.RequireFromString("376.50")), got.InventoryValue.String())
	assert.Equal(t, 1, got.ExpiringLotsCount)
	assert.Equal(t, inventory.DefaultExpiryDays, got.ExpiryWindowDays)
	assert.Equal(t, entity.PeriodOf(now).Label(), got.DateLabel)

	require.Len(t, got.MonthlyMovements, 2, "el movimiento de hace un año queda fuera")
	month := fmt.Sprintf("%04d-%02d", now.Year(), now.Month())
	assert.Equal(t, month, got.MonthlyMovements[0].Month)
	assert.Equal(t, "entrada", got.MonthlyMovements[0].Type)
	assert.Equal(t, int64(4), got.MonthlyMovements[0].Quantity)
	assert.Equal(t, "salida", got.MonthlyMovements[1].Type)
}

func TestGetSummary_FallaDelLedger(t *testing.T) {
	l := memory.NewLedger()
	l.FailOn("movements.TotalsByMonth", errors.New("timeout"))

	_, err := newDashboard(l).GetSummary(context.Background())
	assert.Error(t, err)
}
