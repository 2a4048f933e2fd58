// Package excel exporta el reporte mensual a XLSX y lee catálogos de productos con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	appinventory "github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

var _ appinventory.ReportSheetRenderer = (*ReportSheet)(nil)

var reportHeaders = []string{
	"Código", "Producto",
	"Stock inicial", "Entradas", "Salidas", "Stock final",
	"Valor inicial", "Valor entradas", "Valor salidas", "Valor final",
}

// ReportSheet genera el reporte mensual en una hoja "Existencias".
type ReportSheet struct{}

// NewReportSheet construye el exportador.
func NewReportSheet() *ReportSheet { return &ReportSheet{} }

// RenderReportXLSX escribe una fila por producto y una fila final de TOTAL.
func (s *ReportSheet) RenderReportXLSX(_ context.Context, r *dto.MonthlyReportDTO) ([]byte, error) {
	const sheet = "Existencias"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"006978"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("excel: estilo moneda: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo total: %w", err)
	}

	period := entity.Period{Month: r.Month, Year: r.Year}
	if err := f.SetCellValue(sheet, "A1", "Reporte de existencias valorizadas - "+period.Label()); err != nil {
		return nil, err
	}

	const headerRow = 3
	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(reportHeaders), headerRow)
	if err := f.SetCellStyle(sheet, "A3", last, headerStyle); err != nil {
		return nil, err
	}

	rowIdx := headerRow + 1
	for _, l := range r.Lines {
		values := []any{
			l.Code, l.Name,
			l.OpeningStock, l.InflowQty, l.OutflowQty, l.ClosingStock,
			l.OpeningValue.InexactFloat64(), l.InflowValue.InexactFloat64(),
			l.OutflowValue.InexactFloat64(), l.ClosingValue.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %s: %w", l.Code, err)
		}
		from, _ := excelize.CoordinatesToCellName(7, rowIdx)
		to, _ := excelize.CoordinatesToCellName(10, rowIdx)
		if err := f.SetCellStyle(sheet, from, to, moneyStyle); err != nil {
			return nil, err
		}
		rowIdx++
	}

	labelCell, _ := excelize.CoordinatesToCellName(9, rowIdx)
	totalCell, _ := excelize.CoordinatesToCellName(10, rowIdx)
	if err := f.SetCellValue(sheet, labelCell, "TOTAL"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, totalCell, r.TotalClosing.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, labelCell, totalCell, totalStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "C", "J", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
