package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

// ReportUseCase arma el reporte mensual de existencias de todo el portafolio
// y persiste el cierre de mes.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	snapshotRepo repository.SnapshotRepository
	valuation    *ValuationUseCase
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	snapshotRepo repository.SnapshotRepository,
	valuation *ValuationUseCase,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		snapshotRepo: snapshotRepo,
		valuation:    valuation,
		now:          time.Now,
	}
}

// GenerateMonthlyReport valoriza cada producto activo (en el orden nombre, id del listado)
// y suma el valor de cierre de todos en el total. Si un producto falla, falla el reporte completo.
func (uc *ReportUseCase) GenerateMonthlyReport(ctx context.Context, month, year int) (*dto.MonthlyReportDTO, error) {
	if _, err := entity.NewPeriod(month, year); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar productos: %w", err)
	}

	report := &dto.MonthlyReportDTO{
		Month:        month,
		Year:         year,
		Lines:        make([]dto.ReportLineDTO, 0, len(products)),
		TotalClosing: decimal.Zero,
	}
	for _, p := range products {
		snap, err := uc.valuation.ComputeMonthlyValuation(ctx, p.ID, month, year)
		if err != nil {
			return nil, fmt.Errorf("reporte: producto %s: %w", p.Code, err)
		}
		report.Lines = append(report.Lines, dto.ReportLineDTO{
			Code:                p.Code,
			Name:                p.Name,
			MonthlyValuationDTO: ToValuationDTO(snap),
		})
		report.TotalClosing = report.TotalClosing.Add(snap.ClosingValue)
	}
	return report, nil
}

// CloseMonth genera el reporte del mes y guarda un snapshot por producto, de modo que el mes
// siguiente parta de estos cierres. Re-ejecutarlo reemplaza los snapshots del mismo mes.
func (uc *ReportUseCase) CloseMonth(ctx context.Context, month, year int) (*dto.CloseMonthResponse, error) {
	report, err := uc.GenerateMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	for _, line := range report.Lines {
		snap := &entity.MonthlySnapshot{
			ProductID:    line.ProductID,
			Month:        line.Month,
			Year:         line.Year,
			OpeningStock: line.OpeningStock,
			InflowQty:    line.InflowQty,
			OutflowQty:   line.OutflowQty,
			ClosingStock: line.ClosingStock,
			OpeningValue: line.OpeningValue,
			InflowValue:  line.InflowValue,
			OutflowValue: line.OutflowValue,
			ClosingValue: line.ClosingValue,
			UpdatedAt:    now,
		}
		if err := uc.snapshotRepo.Upsert(ctx, snap); err != nil {
			return nil, fmt.Errorf("cierre %02d/%d: producto %s: %w", month, year, line.Code, err)
		}
	}

	return &dto.CloseMonthResponse{
		Month:          month,
		Year:           year,
		SnapshotsSaved: len(report.Lines),
		TotalClosing:   report.TotalClosing,
	}, nil
}
