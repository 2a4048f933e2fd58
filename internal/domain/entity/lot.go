package entity

import "time"

// Lot lote de un insumo con fecha de vencimiento. No modifica el stock del producto por sí mismo.
type Lot struct {
	ID         string
	ProductID  string
	LotNumber  string
	ExpiryDate time.Time // solo la fecha es significativa
	Quantity   int64
	CreatedAt  time.Time
}
