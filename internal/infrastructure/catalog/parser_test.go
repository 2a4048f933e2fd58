package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/dentalperu/inventario-dental/internal/infrastructure/catalog"
)

func TestReadCSV_UTF8Semicolon(t *testing.T) {
	in := "Código;Nombre;Categoría;Stock mínimo;Precio;Proveedor;Días entrega\n" +
		"res-001;Resina Flow;Resina;5;S/. 45,50;Dental Import;3\n" +
		";;;;;;\n" +
		"ANE-002;Anestesia Lidocaína 2%;anestesia;10;3.20;Farma Dent;2\n"

	rows, err := catalog.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "RES-001", rows[0].Code)
	assert.Equal(t, "resina", rows[0].Category)
	assert.Equal(t, int64(5), rows[0].MinStock)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, 3, rows[0].DeliveryDays)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "Anestesia Lidocaína 2%", rows[1].Name)
}

func TestReadCSV_Latin1(t *testing.T) {
	utf := "codigo,nombre,categoria\nGNT-003,Guantes de Nitrilo Pequeño,consumible\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, err := catalog.ReadCSV(bytes.NewReader([]byte(latin)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Guantes de Nitrilo Pequeño", rows[0].Name)
	assert.True(t, rows[0].UnitPrice.IsZero())
}

func TestParseRecords_MissingColumn(t *testing.T) {
	_, err := catalog.ParseRecords([][]string{{"nombre", "precio"}, {"Resina", "1"}})
	assert.ErrorContains(t, err, "codigo")
}

func TestParseRecords_BadNumber(t *testing.T) {
	_, err := catalog.ParseRecords([][]string{
		{"code", "name", "min_stock"},
		{"RES-001", "Resina", "cinco"},
	})
	assert.ErrorContains(t, err, "fila 2")
}

func TestParseRecords_Empty(t *testing.T) {
	_, err := catalog.ParseRecords(nil)
	assert.Error(t, err)
}
