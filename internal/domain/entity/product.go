package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de insumos dentales.
const (
	CategoryResina       = "resina"
	CategoryAnestesia    = "anestesia"
	CategoryInstrumental = "instrumental"
	CategoryConsumible   = "consumible"
)

// Product representa un insumo dental del catálogo.
// Stock es el contador materializado; la fuente de verdad son los movimientos.
type Product struct {
	ID           string
	Code         string // código único, ej. RES-001
	Name         string
	Description  string
	Category     string
	Stock        int64
	MinStock     int64
	UnitPrice    decimal.Decimal
	Supplier     string
	DeliveryDays int
	Active       bool
	CreatedAt    time.Time
}

// BelowMinimum indica si el stock actual está estrictamente por debajo del mínimo.
func (p *Product) BelowMinimum() bool {
	return p.Stock < p.MinStock
}

// StockValue valoriza el stock actual al precio unitario vigente.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Stock))
}

// ValidCategory reporta si c es una de las categorías admitidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryResina, CategoryAnestesia, CategoryInstrumental, CategoryConsumible:
		return true
	}
	return false
}
