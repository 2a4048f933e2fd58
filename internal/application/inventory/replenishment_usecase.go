package inventory

import (
	"context"
	"fmt"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	invdomain "github.com/dentalperu/inventario-dental/internal/domain/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// ReplenishmentUseCase sugiere pedidos para los insumos bajo su stock mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// SuggestReorders devuelve los productos activos con stock < mínimo y la cantidad sugerida
// (mínimo - stock), junto con proveedor y días de entrega.
func (uc *ReplenishmentUseCase) SuggestReorders(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: %w", err)
	}

	out := make([]dto.ReorderSuggestionDTO, 0, len(products))
	for _, p := range products {
		qty := invdomain.SuggestedOrderQty(p)
		if qty <= 0 {
			// el repositorio ya filtra; se descarta por si el stock cambió entre lecturas
			continue
		}
		out = append(out, dto.ReorderSuggestionDTO{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			SuggestedQty: qty,
			UnitPrice:    p.UnitPrice,
			Supplier:     p.Supplier,
			DeliveryDays: p.DeliveryDays,
		})
	}
	return out, nil
}
