package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/pkg/money"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator e inventory.ReportPDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var invoiceColumns = []column{
	{"Cant.", 1, align.Center},
	{"Descripción", 6, align.Left},
	{"P. Unit.", 2, align.Right},
	{"Total", 3, align.Right},
}

// GenerateInvoicePDF genera la factura y devuelve sus bytes.
//
// Layout A4: emisor y número | emisor | cliente | detalle | totales (OP. GRAVADA, IGV, TOTAL) | QR y leyenda.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, issuer entity.Company, inv *entity.Invoice) ([]byte, error) {
	m := maroto.New(baseConfig("Factura "+inv.Number, issuer.Name))

	m.AddRows(invoiceHeaderRow(issuer, inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s",
			nonEmpty(issuer.Address, "-"), nonEmpty(issuer.Phone, "-")),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	)))
	m.AddRows(customerRow(inv.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(invoiceColumns))
	for _, it := range inv.Items {
		m.AddRows(tableRow(invoiceColumns,
			money.Quantity(it.Quantity),
			it.Description,
			money.Format(it.UnitPrice),
			money.Format(it.Total),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(inv))
	m.AddRows(line.NewRow(3))
	m.AddRows(invoiceFooterRow(issuer, inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceHeaderRow: razón social + RUC (izq) y N° de factura + fecha (der).
func invoiceHeaderRow(issuer entity.Company, inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("RUC: "+issuer.RUC, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA ELECTRÓNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+inv.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+inv.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c entity.Customer) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DATOS DEL CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s: %s   |   Dirección: %s", c.DocType, c.DocNumber, nonEmpty(c.Address, "-")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func invoiceTotalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("OP. GRAVADA:", 1),
			label("IGV (18%):", 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(money.Format(inv.Subtotal), 1),
			value(money.Format(inv.IGV), 7),
			text.New(money.Format(inv.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

// invoiceFooterRow: QR con los datos del comprobante y la leyenda de representación impresa.
func invoiceFooterRow(issuer entity.Company, inv *entity.Invoice) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qrData(issuer, inv), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Representación impresa de la factura electrónica", props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New("Fecha de emisión: "+inv.IssuedAt.Format("02/01/2006 15:04:05"), props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	)
}

// qrData arma el contenido del QR: RUC | tipo (01 = factura) | serie | número | IGV | total | fecha | tipo doc | número doc.
func qrData(issuer entity.Company, inv *entity.Invoice) string {
	series, number, _ := strings.Cut(inv.Number, "-")
	docType := "1"
	if inv.Customer.DocType == entity.DocTypeRUC {
		docType = "6"
	}
	return strings.Join([]string{
		issuer.RUC, "01", series, number,
		inv.IGV.StringFixed(2), inv.Total.StringFixed(2),
		inv.IssuedAt.Format("2006-01-02"), docType, inv.Customer.DocNumber,
	}, "|")
}
