package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

const opRegisterLot = "registrar lote"

// LotUseCase registra lotes con vencimiento. Registrar un lote no modifica el stock:
// el ingreso físico se registra aparte como movimiento de entrada.
type LotUseCase struct {
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(lotRepo repository.LotRepository, productRepo repository.ProductRepository) *LotUseCase {
	return &LotUseCase{lotRepo: lotRepo, productRepo: productRepo, now: time.Now}
}

// RegisterLot valida y guarda el lote. Un número de lote repetido para el producto es
// domain.ErrDuplicate.
func (uc *LotUseCase) RegisterLot(ctx context.Context, in dto.RegisterLotRequest) (*dto.LotResponse, error) {
	lotNumber := strings.TrimSpace(in.LotNumber)
	if in.ProductID == "" || lotNumber == "" {
		return nil, domain.Validation(opRegisterLot, "product_id y lot_number son requeridos")
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation(opRegisterLot, "la cantidad debe ser positiva")
	}
	expiry, err := time.ParseInLocation(time.DateOnly, in.ExpiryDate, time.Local)
	if err != nil {
		return nil, domain.Validation(opRegisterLot, "expiry_date debe tener formato YYYY-MM-DD")
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, domain.Storage(opRegisterLot, err)
	}
	if product == nil {
		return nil, domain.NotFound(opRegisterLot, "producto "+in.ProductID)
	}

	lot := &entity.Lot{
		ProductID:  product.ID,
		LotNumber:  lotNumber,
		ExpiryDate: expiry,
		Quantity:   in.Quantity,
		CreatedAt:  uc.now(),
	}
	if err := uc.lotRepo.Create(ctx, lot); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, domain.Storage(opRegisterLot, err)
	}

	return &dto.LotResponse{
		ID:         lot.ID,
		ProductID:  lot.ProductID,
		LotNumber:  lot.LotNumber,
		ExpiryDate: lot.ExpiryDate.Format(time.DateOnly),
		Quantity:   lot.Quantity,
		CreatedAt:  lot.CreatedAt,
	}, nil
}
