package repository

import (
	"context"
	"time"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// LotWithProduct lote junto con el nombre de su producto (lectura para alertas).
type LotWithProduct struct {
	entity.Lot
	ProductName string
}

// LotRepository puerto de lotes con vencimiento.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	// ListExpiringBetween lista lotes de productos activos con vencimiento en [from, to]
	// (fechas inclusive), ordenados por vencimiento ascendente. from nil = sin cota inferior.
	ListExpiringBetween(ctx context.Context, from *time.Time, to time.Time) ([]LotWithProduct, error)
}
