package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySnapshot existencias valorizadas de un producto en un mes (una fila por producto/mes/año).
// ClosingStock = OpeningStock + InflowQty - OutflowQty; ClosingValue análogo.
type MonthlySnapshot struct {
	ProductID    string
	Month        int
	Year         int
	OpeningStock int64
	InflowQty    int64
	OutflowQty   int64
	ClosingStock int64
	OpeningValue decimal.Decimal
	InflowValue  decimal.Decimal
	OutflowValue decimal.Decimal
	ClosingValue decimal.Decimal
	UpdatedAt    time.Time
}

// Period devuelve el mes del snapshot.
func (s *MonthlySnapshot) Period() Period {
	return Period{Month: s.Month, Year: s.Year}
}
