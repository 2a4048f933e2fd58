package repository

import (
	"context"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// SnapshotRepository puerto para las existencias mensuales persistidas.
type SnapshotRepository interface {
	// Get devuelve (nil, nil) si no hay snapshot para ese producto/mes/año.
	Get(ctx context.Context, productID string, month, year int) (*entity.MonthlySnapshot, error)
	// Upsert inserta o reemplaza el snapshot (único por producto, mes y año).
	Upsert(ctx context.Context, snapshot *entity.MonthlySnapshot) error
}
