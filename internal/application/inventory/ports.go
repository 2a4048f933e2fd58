package inventory

import (
	"context"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que movimiento y ajuste de stock se confirmen juntos o no se confirmen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// StockAlerter recibe el producto luego de un movimiento que lo dejó bajo el mínimo.
// Su falla nunca revierte el movimiento ya confirmado.
type StockAlerter interface {
	LowStockAlert(ctx context.Context, product *entity.Product) error
}

// ReportPDFRenderer genera la representación PDF del reporte mensual.
type ReportPDFRenderer interface {
	RenderReportPDF(ctx context.Context, issuer entity.Company, report *dto.MonthlyReportDTO) ([]byte, error)
}

// ReportSheetRenderer genera el reporte mensual como hoja de cálculo XLSX.
type ReportSheetRenderer interface {
	RenderReportXLSX(ctx context.Context, report *dto.MonthlyReportDTO) ([]byte, error)
}
