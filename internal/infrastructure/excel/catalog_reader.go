package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/catalog"
)

// ReadCatalog lee la primera hoja de un XLSX de productos. La primera fila es la cabecera
// (codigo, nombre, categoria, stock_minimo, precio, proveedor, dias_entrega).
func ReadCatalog(r io.Reader) ([]dto.ProductImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir catálogo: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: el archivo no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %s: %w", sheets[0], err)
	}
	return catalog.ParseRecords(rows)
}
