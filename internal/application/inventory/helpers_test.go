package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.Local)
}

func seedProduct(t *testing.T, l *memory.Ledger, code, name string, stock, min int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Code:         code,
		Name:         name,
		Category:     entity.CategoryConsumible,
		Stock:        stock,
		MinStock:     min,
		UnitPrice:    dec(price),
		Supplier:     "Dental Import SAC",
		DeliveryDays: 3,
		Active:       true,
	}
	require.NoError(t, l.Create(context.Background(), p))
	return p
}

func addMovement(t *testing.T, l *memory.Ledger, productID string, kind entity.MovementKind, qty int64, price string, at time.Time) {
	t.Helper()
	m := entity.NewMovement(productID, kind, qty, dec(price), at)
	require.NoError(t, l.Movements().Create(context.Background(), m))
}
