// Package catalog interpreta catálogos de productos tabulares (CSV o filas de una hoja de cálculo).
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
)

// Columnas reconocidas (cabecera normalizada sin tildes ni mayúsculas).
const (
	colCode         = "codigo"
	colName         = "nombre"
	colCategory     = "categoria"
	colMinStock     = "stock_minimo"
	colPrice        = "precio"
	colSupplier     = "proveedor"
	colDeliveryDays = "dias_entrega"
)

var aliases = map[string]string{
	"code":            colCode,
	"name":            colName,
	"producto":        colName,
	"category":        colCategory,
	"minimo":          colMinStock,
	"min_stock":       colMinStock,
	"precio_unitario": colPrice,
	"unit_price":      colPrice,
	"supplier":        colSupplier,
	"delivery_days":   colDeliveryDays,
}

// ReadCSV lee un CSV separado por comas o punto y coma. Si el contenido no es UTF-8 válido
// se decodifica como ISO-8859-1 (exportaciones de Excel en Windows).
func ReadCSV(r io.Reader) ([]dto.ProductImportRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: leer: %w", err)
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = detectComma(raw)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: csv: %w", err)
	}
	return ParseRecords(records)
}

func detectComma(raw []byte) rune {
	first, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

// ParseRecords convierte filas crudas en filas de importación. La primera fila es la cabecera;
// codigo y nombre son obligatorias. Las filas vacías se ignoran.
func ParseRecords(records [][]string) ([]dto.ProductImportRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog: archivo vacío")
	}
	index := make(map[string]int)
	for i, h := range records[0] {
		index[normalizeHeader(h)] = i
	}
	for _, required := range []string{colCode, colName} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("catalog: falta la columna %q", required)
		}
	}

	rows := make([]dto.ProductImportRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		get := func(col string) string {
			j, ok := index[col]
			if !ok || j >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[j])
		}
		if isBlank(rec) {
			continue
		}

		row := dto.ProductImportRow{
			Line:     line,
			Code:     strings.ToUpper(get(colCode)),
			Name:     get(colName),
			Category: strings.ToLower(foldAccents(get(colCategory))),
			Supplier: get(colSupplier),
		}
		var err error
		if row.MinStock, err = parseInt(get(colMinStock)); err != nil {
			return nil, fmt.Errorf("catalog: fila %d: stock mínimo: %w", line, err)
		}
		if row.UnitPrice, err = parseDecimal(get(colPrice)); err != nil {
			return nil, fmt.Errorf("catalog: fila %d: precio: %w", line, err)
		}
		days, err := parseInt(get(colDeliveryDays))
		if err != nil {
			return nil, fmt.Errorf("catalog: fila %d: días de entrega: %w", line, err)
		}
		row.DeliveryDays = int(days)
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(foldAccents(strings.TrimPrefix(h, "\ufeff"))))
	h = strings.ReplaceAll(h, " ", "_")
	if canonical, ok := aliases[h]; ok {
		return canonical
	}
	return h
}

// foldAccents quita las marcas diacríticas: "Categoría" -> "Categoria".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseDecimal acepta "45.50", "45,50" y "S/. 45.50".
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "S/."), "S/"))
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
