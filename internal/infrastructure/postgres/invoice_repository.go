package postgres

import (
	"context"
	"fmt"

	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo cabecera y detalle de facturas.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// NextNumber toma el siguiente valor de la secuencia. Un rollback deja un hueco en la numeración.
func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

// Create guarda la cabecera y sus líneas. Debe ejecutarse dentro de una transacción.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (id, number, customer_doc_type, customer_doc_number, customer_name, customer_address,
		                      subtotal, igv, total, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.Number, inv.Customer.DocType, inv.Customer.DocNumber, inv.Customer.Name, inv.Customer.Address,
		inv.Subtotal, inv.IGV, inv.Total, inv.IssuedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	for i, it := range inv.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, line, product_id, description, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			inv.ID, i+1, it.ProductID, it.Description, it.Quantity, it.UnitPrice, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", i+1, err)
		}
	}
	return nil
}
