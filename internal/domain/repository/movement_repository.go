package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// MovementTotal agregado mensual por tipo de movimiento (tablero).
type MovementTotal struct {
	Period   entity.Period
	Kind     entity.MovementKind
	Quantity int64
	Total    decimal.Decimal
}

// MovementRepository puerto del ledger de movimientos (solo inserción).
type MovementRepository interface {
	// Create agrega un movimiento; TotalPrice ya viene derivado por entity.NewMovement.
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByPeriod lista los movimientos del producto fechados dentro del mes/año.
	ListByPeriod(ctx context.Context, productID string, month, year int) ([]*entity.Movement, error)
	// SumQuantities suma las cantidades de entrada y salida de todo el historial del producto.
	SumQuantities(ctx context.Context, productID string) (inflow, outflow int64, err error)
	// TotalsByMonth agrega cantidades y montos por mes y tipo en [from, to).
	TotalsByMonth(ctx context.Context, from, to time.Time) ([]MovementTotal, error)
}
