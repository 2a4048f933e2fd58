package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// Flows acumula cantidades y valores de un mes separados en entradas y salidas.
type Flows struct {
	InflowQty    int64
	OutflowQty   int64
	InflowValue  decimal.Decimal
	OutflowValue decimal.Decimal
}

// SumFlows agrega los movimientos: entrada y ajuste_positivo suman al lado de entradas,
// salida y ajuste_negativo al de salidas. Se usa el TotalPrice registrado en cada movimiento.
func SumFlows(movs []*entity.Movement) Flows {
	f := Flows{InflowValue: decimal.Zero, OutflowValue: decimal.Zero}
	for _, m := range movs {
		if m.Kind.IsInflow() {
			f.InflowQty += m.Quantity
			f.InflowValue = f.InflowValue.Add(m.TotalPrice)
			continue
		}
		f.OutflowQty += m.Quantity
		f.OutflowValue = f.OutflowValue.Add(m.TotalPrice)
	}
	return f
}

// RollForward calcula las existencias valorizadas del período a partir del cierre del mes
// anterior (prev, nil = base cero) y los movimientos del período.
// No se aplica piso en cero: un cierre negativo indica un problema en los datos de origen.
func RollForward(productID string, period entity.Period, prev *entity.MonthlySnapshot, movs []*entity.Movement) *entity.MonthlySnapshot {
	openingStock := int64(0)
	openingValue := decimal.Zero
	if prev != nil {
		openingStock = prev.ClosingStock
		openingValue = prev.ClosingValue
	}

	f := SumFlows(movs)
	return &entity.MonthlySnapshot{
		ProductID:    productID,
		Month:        period.Month,
		Year:         period.Year,
		OpeningStock: openingStock,
		InflowQty:    f.InflowQty,
		OutflowQty:   f.OutflowQty,
		ClosingStock: openingStock + f.InflowQty - f.OutflowQty,
		OpeningValue: openingValue,
		InflowValue:  f.InflowValue,
		OutflowValue: f.OutflowValue,
		ClosingValue: openingValue.Add(f.InflowValue).Sub(f.OutflowValue),
	}
}
