package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del ledger.
type MovementKind string

const (
	MovementEntrada        MovementKind = "entrada"
	MovementSalida         MovementKind = "salida"
	MovementAjustePositivo MovementKind = "ajuste_positivo"
	MovementAjusteNegativo MovementKind = "ajuste_negativo"
)

// Valid reporta si k es un tipo conocido.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementEntrada, MovementSalida, MovementAjustePositivo, MovementAjusteNegativo:
		return true
	}
	return false
}

// IsInflow es verdadero para entrada y ajuste positivo.
func (k MovementKind) IsInflow() bool {
	return k == MovementEntrada || k == MovementAjustePositivo
}

// StockDelta devuelve el efecto firmado de qty unidades de este tipo sobre el stock.
func (k MovementKind) StockDelta(qty int64) int64 {
	if k.IsInflow() {
		return qty
	}
	return -qty
}

// Movement es una entrada inmutable del ledger. TotalPrice se fija al crear el movimiento
// y no se recalcula si luego cambia el precio del producto.
type Movement struct {
	ID            string
	TransactionID string
	ProductID     string
	Kind          MovementKind
	Quantity      int64
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	OccurredAt    time.Time
	Document      string
	Notes         string
	CreatedBy     string
}

// NewMovement construye un movimiento derivando TotalPrice = Quantity × UnitPrice.
func NewMovement(productID string, kind MovementKind, qty int64, unitPrice decimal.Decimal, at time.Time) *Movement {
	return &Movement{
		ProductID:  productID,
		Kind:       kind,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(qty)),
		OccurredAt: at,
	}
}
