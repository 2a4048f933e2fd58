package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	Customer CustomerRequest      `json:"customer"`
	Items    []InvoiceItemRequest `json:"items"`
}

// CustomerRequest datos del adquiriente.
type CustomerRequest struct {
	DocType   string `json:"doc_type"` // DNI | RUC
	DocNumber string `json:"doc_number"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario opcional).
// Si UnitPrice es nil se usa el precio vigente del producto.
type InvoiceItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResult factura emitida y su representación impresa.
type InvoiceResult struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IGV      decimal.Decimal `json:"igv"`
	Total    decimal.Decimal `json:"total"`
	PDF      []byte          `json:"-"`
	Filename string          `json:"filename"`
}
