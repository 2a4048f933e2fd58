package inventory

import "github.com/dentalperu/inventario-dental/internal/domain/entity"

// SuggestedOrderQty cantidad a pedir para volver al mínimo: MinStock - Stock.
// Devuelve 0 si el producto no está bajo el mínimo.
func SuggestedOrderQty(p *entity.Product) int64 {
	if !p.BelowMinimum() {
		return 0
	}
	return p.MinStock - p.Stock
}
