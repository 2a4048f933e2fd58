package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento del cliente (SUNAT).
const (
	DocTypeDNI = "DNI"
	DocTypeRUC = "RUC"
)

// IGVRate tasa del Impuesto General a las Ventas.
var IGVRate = decimal.NewFromFloat(0.18)

// Customer datos del adquiriente impresos en la factura.
type Customer struct {
	DocType   string
	DocNumber string
	Name      string
	Address   string
}

// InvoiceItem línea de la factura.
type InvoiceItem struct {
	ProductID   string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Invoice factura de venta. Cada ítem genera una salida en el ledger.
type Invoice struct {
	ID       string
	Number   string // ej. F001-00000042
	Customer Customer
	Items    []InvoiceItem
	Subtotal decimal.Decimal
	IGV      decimal.Decimal
	Total    decimal.Decimal
	IssuedAt time.Time
}

// ComputeTotals recalcula el total de cada ítem, el subtotal (operación gravada), IGV y total.
func (inv *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Total = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		subtotal = subtotal.Add(it.Total)
	}
	inv.Subtotal = subtotal
	inv.IGV = subtotal.Mul(IGVRate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.IGV)
}
