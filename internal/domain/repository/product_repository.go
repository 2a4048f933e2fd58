package repository

import (
	"context"

	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// ListActive lista los productos activos ordenados por nombre e id.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// ListBelowMinimum lista los productos activos con stock < stock mínimo.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	// AdjustStock suma delta al contador de stock de forma atómica y devuelve las filas afectadas.
	AdjustStock(ctx context.Context, id string, delta int64) (int64, error)
}
