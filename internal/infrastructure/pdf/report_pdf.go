package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	appinventory "github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/pkg/money"
)

var _ appinventory.ReportPDFRenderer = (*MarotoPDFGenerator)(nil)

var reportColumns = []column{
	{"Código", 1, align.Left},
	{"Producto", 3, align.Left},
	{"Inicial", 1, align.Right},
	{"Entradas", 1, align.Right},
	{"Salidas", 1, align.Right},
	{"Final", 1, align.Right},
	{"Valor entradas", 2, align.Right},
	{"Valor final", 2, align.Right},
}

// RenderReportPDF genera el reporte mensual de existencias valorizadas.
func (g *MarotoPDFGenerator) RenderReportPDF(_ context.Context, issuer entity.Company, r *dto.MonthlyReportDTO) ([]byte, error) {
	period := entity.Period{Month: r.Month, Year: r.Year}
	m := maroto.New(baseConfig("Reporte de existencias "+period.String(), issuer.Name))

	m.AddRows(row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(issuer.Name, "Inventario Dental"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+nonEmpty(issuer.RUC, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period.Label(), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(3))

	m.AddRows(tableHeaderRow(reportColumns))
	for _, l := range r.Lines {
		m.AddRows(tableRow(reportColumns,
			l.Code,
			l.Name,
			money.Quantity(l.OpeningStock),
			money.Quantity(l.InflowQty),
			money.Quantity(l.OutflowQty),
			money.Quantity(l.ClosingStock),
			money.Amount(l.InflowValue),
			money.Amount(l.ClosingValue),
		))
	}
	if len(r.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos activos", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(money.Format(r.TotalClosing), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
			Style: fontstyle.Italic, Size: 7, Top: 3, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte %s: %w", period, err)
	}
	return doc.GetBytes(), nil
}
