package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos (solo INSERT y lecturas).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento. total_price se guarda tal como viene calculado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	var txID any
	if m.TransactionID != "" {
		txID = m.TransactionID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, transaction_id, product_id, kind, quantity, unit_price, total_price, occurred_at, document, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, txID, m.ProductID, string(m.Kind), m.Quantity, m.UnitPrice, m.TotalPrice,
		m.OccurredAt, m.Document, m.Notes, m.CreatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert movement: producto %s inexistente: %w", m.ProductID, err)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByPeriod lista los movimientos del producto con fecha dentro del mes (calendario local).
func (r *MovementRepo) ListByPeriod(ctx context.Context, productID string, month, year int) ([]*entity.Movement, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(transaction_id::text, ''), product_id, kind, quantity, unit_price, total_price,
		       occurred_at, document, notes, created_by
		FROM movements
		WHERE product_id = $1
		  AND occurred_at >= make_date($3, $2, 1)
		  AND occurred_at <  make_date($3, $2, 1) + INTERVAL '1 month'
		ORDER BY occurred_at, id`, productID, month, year)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var kind string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &kind, &m.Quantity, &m.UnitPrice,
			&m.TotalPrice, &m.OccurredAt, &m.Document, &m.Notes, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumQuantities suma entradas y salidas de todo el historial del producto.
func (r *MovementRepo) SumQuantities(ctx context.Context, productID string) (inflow, outflow int64, err error) {
	if !isUUID(productID) {
		return 0, 0, nil
	}
	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity) FILTER (WHERE kind IN ('entrada', 'ajuste_positivo')), 0)::bigint,
		       COALESCE(SUM(quantity) FILTER (WHERE kind IN ('salida', 'ajuste_negativo')), 0)::bigint
		FROM movements WHERE product_id = $1`, productID).Scan(&inflow, &outflow)
	if err != nil {
		return 0, 0, fmt.Errorf("sum movements: %w", err)
	}
	return inflow, outflow, nil
}

// TotalsByMonth agrega cantidad y monto por mes y tipo en [from, to).
func (r *MovementRepo) TotalsByMonth(ctx context.Context, from, to time.Time) ([]repository.MovementTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT EXTRACT(YEAR FROM occurred_at)::int, EXTRACT(MONTH FROM occurred_at)::int, kind,
		       SUM(quantity)::bigint, SUM(total_price)
		FROM movements
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3`, from, to)
	if err != nil {
		return nil, fmt.Errorf("totals by month: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.MovementTotal, error) {
		var t repository.MovementTotal
		var kind string
		err := row.Scan(&t.Period.Year, &t.Period.Month, &kind, &t.Quantity, &t.Total)
		t.Kind = entity.MovementKind(kind)
		return t, err
	})
}
