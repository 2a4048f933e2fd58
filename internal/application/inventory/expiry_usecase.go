package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	invdomain "github.com/dentalperu/inventario-dental/internal/domain/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// DefaultExpiryDays ventana por defecto para alertas de vencimiento.
const DefaultExpiryDays = 30

// ExpiryUseCase detecta lotes próximos a vencer.
type ExpiryUseCase struct {
	lotRepo repository.LotRepository
	now     func() time.Time
}

// NewExpiryUseCase construye el caso de uso.
func NewExpiryUseCase(lotRepo repository.LotRepository) *ExpiryUseCase {
	return &ExpiryUseCase{lotRepo: lotRepo, now: time.Now}
}

// FindExpiringLots devuelve los lotes de productos activos que vencen entre hoy y hoy+daysAhead
// (inclusive), ordenados por vencimiento. Con includeExpired también incluye los ya vencidos.
// DaysRemaining es la diferencia en días calendario enteros.
func (uc *ExpiryUseCase) FindExpiringLots(ctx context.Context, daysAhead int, includeExpired bool) ([]dto.ExpiringLotDTO, error) {
	if daysAhead < 0 {
		return nil, fmt.Errorf("%w: días de alerta negativos", domain.ErrInvalidInput)
	}

	today := invdomain.DateOnly(uc.now())
	limit := today.AddDate(0, 0, daysAhead)
	var from *time.Time
	if !includeExpired {
		from = &today
	}

	lots, err := uc.lotRepo.ListExpiringBetween(ctx, from, limit)
	if err != nil {
		return nil, fmt.Errorf("vencimientos: %w", err)
	}

	out := make([]dto.ExpiringLotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.ExpiringLotDTO{
			LotID:         l.ID,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			LotNumber:     l.LotNumber,
			ExpiryDate:    l.ExpiryDate.Format(time.DateOnly),
			Quantity:      l.Quantity,
			DaysRemaining: invdomain.DaysBetween(today, l.ExpiryDate),
		})
	}
	return out, nil
}
