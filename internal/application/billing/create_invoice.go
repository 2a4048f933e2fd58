package billing

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

const opCreateInvoice = "emitir factura"

// InvoiceSeries serie de las facturas emitidas.
const InvoiceSeries = "F001"

// CreateInvoiceUseCase emite la factura y registra una salida por ítem en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
	alerter     inventory.StockAlerter
	issuer      entity.Company
	now         func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso. alerter puede ser nil.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
	alerter inventory.StockAlerter,
	issuer entity.Company,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		generator:   generator,
		alerter:     alerter,
		issuer:      issuer,
		now:         time.Now,
	}
}

// CreateInvoice valida cliente e ítems, reserva el correlativo, descuenta el stock de cada ítem
// (documento "Factura-<número>"), guarda la factura y genera el PDF. Si algo falla no queda nada escrito.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResult, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation(opCreateInvoice, "la factura necesita al menos un ítem")
	}

	// Lectura de productos fuera de la tx: descripción y precio vigente.
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.Validation(opCreateInvoice, "cada ítem necesita product_id y cantidad positiva")
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return nil, domain.Validation(opCreateInvoice, "el precio unitario no puede ser negativo")
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, domain.Storage(opCreateInvoice, err)
		}
		if product == nil {
			return nil, domain.NotFound(opCreateInvoice, "producto "+it.ProductID)
		}
		price := product.UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, entity.InvoiceItem{
			ProductID:   product.ID,
			Description: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:       uuid.New().String(),
		Customer: customer,
		Items:    items,
		IssuedAt: now,
	}
	inv.ComputeTotals()

	var (
		pdfBytes []byte
		affected []*entity.Product
	)
	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		seq, err := invoiceRepo.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv.Number = fmt.Sprintf("%s-%08d", InvoiceSeries, seq)
		document := "Factura-" + inv.Number

		affected = affected[:0]
		for _, it := range inv.Items {
			mov := entity.NewMovement(it.ProductID, entity.MovementSalida, it.Quantity, it.UnitPrice, now)
			mov.TransactionID = inv.ID
			mov.Document = document
			mov.CreatedBy = userID
			product, err := inventory.ApplyMovementInTx(ctx, movRepo, productRepo, mov)
			if err != nil {
				return err
			}
			affected = append(affected, product)
		}

		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}

		pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, uc.issuer, inv)
		if err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage(opCreateInvoice, err)
	}

	if uc.alerter != nil {
		for _, p := range affected {
			if p.BelowMinimum() {
				_ = uc.alerter.LowStockAlert(ctx, p)
			}
		}
	}

	return &dto.InvoiceResult{
		ID:       inv.ID,
		Number:   inv.Number,
		Subtotal: inv.Subtotal,
		IGV:      inv.IGV,
		Total:    inv.Total,
		PDF:      pdfBytes,
		Filename: fmt.Sprintf("factura_%s.pdf", inv.Number),
	}, nil
}

// validateCustomer exige DNI de 8 dígitos o RUC de 11 y nombre.
func validateCustomer(in dto.CustomerRequest) (entity.Customer, error) {
	c := entity.Customer{
		DocType:   strings.ToUpper(strings.TrimSpace(in.DocType)),
		DocNumber: strings.TrimSpace(in.DocNumber),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
	}
	if c.Name == "" {
		return c, domain.Validation(opCreateInvoice, "nombre del cliente requerido")
	}

	var digits int
	switch c.DocType {
	case entity.DocTypeDNI:
		digits = 8
	case entity.DocTypeRUC:
		digits = 11
	default:
		return c, domain.Validation(opCreateInvoice, "tipo de documento debe ser DNI o RUC")
	}
	if len(c.DocNumber) != digits || strings.IndexFunc(c.DocNumber, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return c, domain.Validation(opCreateInvoice, fmt.Sprintf("%s debe tener %d dígitos", c.DocType, digits))
	}
	return c, nil
}
