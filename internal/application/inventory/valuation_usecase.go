package inventory

import (
	"context"
	"fmt"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	invdomain "github.com/dentalperu/inventario-dental/internal/domain/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// ValuationUseCase calcula existencias valorizadas mensuales (roll-forward) y recalcula stock.
// No guarda estado entre llamadas: cada resultado depende solo del ledger al momento de leer.
type ValuationUseCase struct {
	productRepo  repository.ProductRepository
	movRepo      repository.MovementRepository
	snapshotRepo repository.SnapshotRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	snapshotRepo repository.SnapshotRepository,
) *ValuationUseCase {
	return &ValuationUseCase{
		productRepo:  productRepo,
		movRepo:      movRepo,
		snapshotRepo: snapshotRepo,
	}
}

// ComputeMonthlyValuation deriva apertura del cierre del mes anterior (cero si no existe snapshot),
// agrega los movimientos del mes y devuelve el cierre. No verifica que el producto exista.
func (uc *ValuationUseCase) ComputeMonthlyValuation(ctx context.Context, productID string, month, year int) (*entity.MonthlySnapshot, error) {
	period, err := entity.NewPeriod(month, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	prev := period.Previous()
	prevSnap, err := uc.snapshotRepo.Get(ctx, productID, prev.Month, prev.Year)
	if err != nil {
		return nil, fmt.Errorf("valuación: snapshot %s: %w", prev, err)
	}

	movs, err := uc.movRepo.ListByPeriod(ctx, productID, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("valuación: movimientos %s: %w", period, err)
	}

	return invdomain.RollForward(productID, period, prevSnap, movs), nil
}

// ComputeCurrentStock recalcula el stock desde todo el historial de movimientos.
// Devuelve (nil, nil) si el producto no existe.
func (uc *ValuationUseCase) ComputeCurrentStock(ctx context.Context, productID string) (*dto.CurrentStockDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("stock actual: producto: %w", err)
	}
	if product == nil {
		return nil, nil
	}

	inflow, outflow, err := uc.movRepo.SumQuantities(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("stock actual: movimientos: %w", err)
	}

	computed := inflow - outflow
	return &dto.CurrentStockDTO{
		ProductID:     product.ID,
		Name:          product.Name,
		StoredStock:   product.Stock,
		MinStock:      product.MinStock,
		ComputedStock: computed,
		Consistent:    computed == product.Stock,
	}, nil
}

// ToValuationDTO adapta el snapshot calculado a su representación de respuesta.
func ToValuationDTO(s *entity.MonthlySnapshot) dto.MonthlyValuationDTO {
	return dto.MonthlyValuationDTO{
		ProductID:    s.ProductID,
		Month:        s.Month,
		Year:         s.Year,
		OpeningStock: s.OpeningStock,
		InflowQty:    s.InflowQty,
		OutflowQty:   s.OutflowQty,
		ClosingStock: s.ClosingStock,
		OpeningValue: s.OpeningValue,
		InflowValue:  s.InflowValue,
		OutflowValue: s.OutflowValue,
		ClosingValue: s.ClosingValue,
	}
}
