package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo existencias mensuales cerradas.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Get devuelve el snapshot o (nil, nil) si no existe.
func (r *SnapshotRepo) Get(ctx context.Context, productID string, month, year int) (*entity.MonthlySnapshot, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	var s entity.MonthlySnapshot
	err := r.q.QueryRow(ctx, `
		SELECT product_id, month, year, opening_stock, inflow_qty, outflow_qty, closing_stock,
		       opening_value, inflow_value, outflow_value, closing_value, updated_at
		FROM monthly_snapshots
		WHERE product_id = $1 AND month = $2 AND year = $3`, productID, month, year,
	).Scan(&s.ProductID, &s.Month, &s.Year, &s.OpeningStock, &s.InflowQty, &s.OutflowQty, &s.ClosingStock,
		&s.OpeningValue, &s.InflowValue, &s.OutflowValue, &s.ClosingValue, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza el snapshot del producto en ese mes.
func (r *SnapshotRepo) Upsert(ctx context.Context, s *entity.MonthlySnapshot) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO monthly_snapshots (product_id, month, year, opening_stock, inflow_qty, outflow_qty, closing_stock,
		                               opening_value, inflow_value, outflow_value, closing_value, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (product_id, year, month) DO UPDATE SET
			opening_stock = EXCLUDED.opening_stock,
			inflow_qty    = EXCLUDED.inflow_qty,
			outflow_qty   = EXCLUDED.outflow_qty,
			closing_stock = EXCLUDED.closing_stock,
			opening_value = EXCLUDED.opening_value,
			inflow_value  = EXCLUDED.inflow_value,
			outflow_value = EXCLUDED.outflow_value,
			closing_value = EXCLUDED.closing_value,
			updated_at    = now()`,
		s.ProductID, s.Month, s.Year, s.OpeningStock, s.InflowQty, s.OutflowQty, s.ClosingStock,
		s.OpeningValue, s.InflowValue, s.OutflowValue, s.ClosingValue,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
