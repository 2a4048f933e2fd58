package repository

import (
	"context"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	// NextNumber reserva el siguiente correlativo de la serie.
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
}
