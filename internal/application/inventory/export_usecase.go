package inventory

import (
	"context"
	"fmt"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

// Tipos de contenido de las exportaciones.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportUseCase exporta el reporte mensual en PDF o XLSX.
type ExportUseCase struct {
	report *ReportUseCase
	pdf    ReportPDFRenderer
	sheet  ReportSheetRenderer
	issuer entity.Company
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(report *ReportUseCase, pdf ReportPDFRenderer, sheet ReportSheetRenderer, issuer entity.Company) *ExportUseCase {
	return &ExportUseCase{report: report, pdf: pdf, sheet: sheet, issuer: issuer}
}

// ExportPDF reporte mensual en PDF.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, month, year int) (*dto.FileDTO, error) {
	report, err := uc.report.GenerateMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.RenderReportPDF(ctx, uc.issuer, report)
	if err != nil {
		return nil, fmt.Errorf("exportar pdf: %w", err)
	}
	return &dto.FileDTO{
		Filename:    reportFilename(month, year, "pdf"),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// ExportXLSX reporte mensual en Excel.
func (uc *ExportUseCase) ExportXLSX(ctx context.Context, month, year int) (*dto.FileDTO, error) {
	report, err := uc.report.GenerateMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, err
	}
	content, err := uc.sheet.RenderReportXLSX(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("exportar xlsx: %w", err)
	}
	return &dto.FileDTO{
		Filename:    reportFilename(month, year, "xlsx"),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

func reportFilename(month, year int, ext string) string {
	return fmt.Sprintf("reporte_existencias_%d_%02d.%s", year, month, ext)
}
