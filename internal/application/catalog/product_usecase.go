package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

const opCreateProduct = "crear producto"

// ProductUseCase alta y consulta del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto activo con stock 0. Un código repetido es domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	row := dto.ProductImportRow{
		Code:         strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		MinStock:     in.MinStock,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		DeliveryDays: in.DeliveryDays,
	}
	if msg := validateRow(row); msg != "" {
		return nil, domain.Validation(opCreateProduct, msg)
	}
	if row.Category == "" {
		row.Category = entity.CategoryConsumible
	}

	p := &entity.Product{
		Code:         row.Code,
		Name:         row.Name,
		Description:  in.Description,
		Category:     row.Category,
		MinStock:     row.MinStock,
		UnitPrice:    row.UnitPrice,
		Supplier:     row.Supplier,
		DeliveryDays: row.DeliveryDays,
		Active:       true,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, domain.Storage(opCreateProduct, err)
	}
	out := ToProductResponse(p)
	return &out, nil
}

// GetByID devuelve (nil, nil) si el producto no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("consultar producto", err)
	}
	if p == nil {
		return nil, nil
	}
	out := ToProductResponse(p)
	return &out, nil
}

// ListActive productos activos ordenados por nombre.
func (uc *ProductUseCase) ListActive(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, domain.Storage("listar productos", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		UnitPrice:    p.UnitPrice,
		Supplier:     p.Supplier,
		DeliveryDays: p.DeliveryDays,
		Active:       p.Active,
		BelowMinimum: p.BelowMinimum(),
		CreatedAt:    p.CreatedAt,
	}
}
