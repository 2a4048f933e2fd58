package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

const opRegisterMovement = "registrar movimiento"

// RegisterMovementUseCase registra movimientos de forma transaccional: inserta el movimiento
// y ajusta el stock del producto con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	alerter  StockAlerter
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. alerter puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, alerter StockAlerter) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		alerter:  alerter,
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	UserID    string
	ProductID string
	Kind      entity.MovementKind
	Quantity  int64
	UnitPrice decimal.Decimal
	Document  string
	Notes     string
}

// MovementInputFromRequest adapta el request HTTP al input del caso de uso.
func MovementInputFromRequest(userID string, in dto.RegisterMovementRequest) MovementInput {
	return MovementInput{
		UserID:    userID,
		ProductID: in.ProductID,
		Kind:      entity.MovementKind(in.Type),
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Document:  in.Document,
		Notes:     in.Notes,
	}
}

// Validate rechaza la entrada antes de cualquier escritura.
func (in MovementInput) Validate() error {
	switch {
	case in.ProductID == "":
		return domain.Validation(opRegisterMovement, "product_id requerido")
	case !in.Kind.Valid():
		return domain.Validation(opRegisterMovement, "tipo de movimiento inválido: "+string(in.Kind))
	case in.Quantity <= 0:
		return domain.Validation(opRegisterMovement, "la cantidad debe ser positiva")
	case in.UnitPrice.IsNegative():
		return domain.Validation(opRegisterMovement, "el precio unitario no puede ser negativo")
	}
	return nil
}

// RegisterMovement valida, abre una transacción, bloquea el producto, inserta el movimiento y
// ajusta el stock en ±cantidad. Si cualquier paso falla no queda escritura parcial.
// Los errores son *domain.OpError con Kind validation, not_found o storage.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*dto.MovementResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	mov := entity.NewMovement(input.ProductID, input.Kind, input.Quantity, input.UnitPrice, now)
	mov.TransactionID = uuid.New().String()
	mov.Document = input.Document
	mov.Notes = input.Notes
	mov.CreatedBy = input.UserID

	var after *entity.Product
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		var err error
		after, err = ApplyMovementInTx(ctx, movRepo, productRepo, mov)
		return err
	})
	if err != nil {
		return nil, domain.Storage(opRegisterMovement, err)
	}

	if uc.alerter != nil && after.BelowMinimum() {
		_ = uc.alerter.LowStockAlert(ctx, after)
	}

	return &dto.MovementResponse{
		ID:            mov.ID,
		TransactionID: mov.TransactionID,
		ProductID:     mov.ProductID,
		Type:          string(mov.Kind),
		Quantity:      mov.Quantity,
		UnitPrice:     mov.UnitPrice,
		TotalPrice:    mov.TotalPrice,
		OccurredAt:    mov.OccurredAt,
		Document:      mov.Document,
		StockAfter:    after.Stock,
	}, nil
}

// ApplyMovementInTx inserta mov y ajusta el stock usando los repositorios de la transacción del
// caller. Devuelve el producto con el stock resultante. También lo usa la facturación.
func ApplyMovementInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	mov *entity.Movement,
) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound(opRegisterMovement, "producto "+mov.ProductID)
	}

	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	delta := mov.Kind.StockDelta(mov.Quantity)
	rows, err := productRepo.AdjustStock(ctx, mov.ProductID, delta)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.NotFound(opRegisterMovement, "producto "+mov.ProductID)
	}

	product.Stock += delta
	return product, nil
}
