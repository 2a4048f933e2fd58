package catalog_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/memory"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	l := memory.NewLedger()
	require.NoError(t, l.Create(ctx, &entity.Product{Code: "RES-001", Name: "Resina Flow", Category: entity.CategoryResina, Active: true}))

	res, err := catalog.NewImportUseCase(l).Import(ctx, []dto.ProductImportRow{
		{Line: 2, Code: "RES-001", Name: "Resina Flow"},
		{Line: 3, Code: "GNT-003", Name: "Guantes de Nitrilo", MinStock: 50, UnitPrice: decimal.RequireFromString("28.00")},
		{Line: 4, Code: "XXX-9", Name: "Desconocido", Category: "juguetes"},
		{Line: 5, Code: "", Name: "Sin código"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, []string{"RES-001"}, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Equal(t, 5, res.Errors[1].Line)

	active, err := l.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Guantes de Nitrilo", active[0].Name)
	assert.Equal(t, entity.CategoryConsumible, active[0].Category)
	assert.Zero(t, active[0].Stock)
}

func TestImport_StorageFailure(t *testing.T) {
	l := memory.NewLedger()
	l.FailOn("products.Create", errors.New("conexión cerrada"))

	_, err := catalog.NewImportUseCase(l).Import(context.Background(), []dto.ProductImportRow{
		{Line: 2, Code: "RES-001", Name: "Resina Flow"},
	})
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	l := memory.NewLedger()
	reader := func(r io.Reader) ([]dto.ProductImportRow, error) {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if string(b) == "roto" {
			return nil, errors.New("archivo ilegible")
		}
		return []dto.ProductImportRow{{Line: 2, Code: string(b), Name: "Producto " + string(b)}}, nil
	}
	uc := catalog.NewImportUseCase(l).WithReader(".CSV", reader)

	res, err := uc.ImportFile(ctx, "catalogo.csv", strings.NewReader("RES-009"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	_, err = uc.ImportFile(ctx, "catalogo.csv", strings.NewReader("roto"))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.ImportFile(ctx, "catalogo.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
