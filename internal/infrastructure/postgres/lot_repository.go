package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes con fecha de vencimiento.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create registra el lote. Un número de lote repetido para el mismo producto es ErrDuplicate.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO lots (id, product_id, lot_number, expiry_date, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		lot.ID, lot.ProductID, lot.LotNumber, lot.ExpiryDate, lot.Quantity,
	).Scan(&lot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// ListExpiringBetween lotes de productos activos con vencimiento en [from, to]; from nil sin cota inferior.
func (r *LotRepo) ListExpiringBetween(ctx context.Context, from *time.Time, to time.Time) ([]repository.LotWithProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.product_id, l.lot_number, l.expiry_date, l.quantity, l.created_at, p.name
		FROM lots l
		JOIN products p ON p.id = l.product_id
		WHERE p.active
		  AND l.expiry_date <= $2::date
		  AND ($1::date IS NULL OR l.expiry_date >= $1::date)
		ORDER BY l.expiry_date, l.lot_number`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring lots: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.LotWithProduct, error) {
		var l repository.LotWithProduct
		err := row.Scan(&l.ID, &l.ProductID, &l.LotNumber, &l.ExpiryDate, &l.Quantity, &l.CreatedAt, &l.ProductName)
		return l, err
	})
}
