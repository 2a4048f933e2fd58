package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/memory"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/postgres"
	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/logger"
)

// txRunner cubre las transacciones de inventario y de facturación.
type txRunner interface {
	inventory.TxRunner
	billing.BillingTxRunner
}

// store agrupa los repositorios y el runner de transacciones del backend elegido.
type store struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	snapshots repository.SnapshotRepository
	lots      repository.LotRepository
	tx        txRunner
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.App.Store == "memory" {
		l := memory.NewLedger()
		if err := seedDemo(ctx, l); err != nil {
			return nil, err
		}
		log.Warn().Msg("usando ledger en memoria: los datos se pierden al reiniciar")
		return &store{
			products:  l,
			movements: l.Movements(),
			snapshots: l.Snapshots(),
			lots:      l.Lots(),
			tx:        l,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.Bootstrap {
		if err := postgres.Bootstrap(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("crear esquema: %w", err)
		}
		log.Info().Msg("esquema verificado")
	}
	return &store{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		snapshots: postgres.NewSnapshotRepository(pool),
		lots:      postgres.NewLotRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

// seedDemo carga los mismos productos de ejemplo que el esquema SQL.
func seedDemo(ctx context.Context, l *memory.Ledger) error {
	demo := []entity.Product{
		{Code: "RES-001", Name: "Resina Flow", Category: entity.CategoryResina, MinStock: 10, UnitPrice: decimal.RequireFromString("85.50"), Supplier: "Dental Import SAC", DeliveryDays: 3},
		{Code: "ANE-002", Name: "Anestesia Lidocaína 2%", Category: entity.CategoryAnestesia, MinStock: 5, UnitPrice: decimal.RequireFromString("12.80"), Supplier: "Dental Import SAC", DeliveryDays: 2},
		{Code: "GNT-003", Name: "Guantes de Nitrilo", Category: entity.CategoryConsumible, MinStock: 20, UnitPrice: decimal.RequireFromString("1.20"), Supplier: "Distribuidora Médica", DeliveryDays: 1},
	}
	for i := range demo {
		p := demo[i]
		p.Active = true
		if err := l.Create(ctx, &p); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("seed %s: %w", p.Code, err)
		}
	}
	return nil
}
