package billing

import (
	"context"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación impresa de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, issuer entity.Company, invoice *entity.Invoice) ([]byte, error)
}
