package dto

import "github.com/shopspring/decimal"

// ProductImportRow fila de un catálogo de productos (CSV o XLSX). Line es la fila de origen.
type ProductImportRow struct {
	Line         int
	Code         string
	Name         string
	Category     string
	MinStock     int64
	UnitPrice    decimal.Decimal
	Supplier     string
	DeliveryDays int
}

// ImportResult resumen de una importación de catálogo.
type ImportResult struct {
	Created int              `json:"created"`
	Skipped []string         `json:"skipped"` // códigos ya existentes
	Errors  []ImportRowError `json:"errors"`
}

// ImportRowError fila rechazada por validación.
type ImportRowError struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
