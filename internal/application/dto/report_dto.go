package dto

import "github.com/shopspring/decimal"

// MonthlyValuationDTO existencias valorizadas de un producto en un mes.
type MonthlyValuationDTO struct {
	ProductID    string          `json:"product_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	OpeningStock int64           `json:"opening_stock"`
	InflowQty    int64           `json:"inflow_qty"`
	OutflowQty   int64           `json:"outflow_qty"`
	ClosingStock int64           `json:"closing_stock"`
	OpeningValue decimal.Decimal `json:"opening_value"`
	InflowValue  decimal.Decimal `json:"inflow_value"`
	OutflowValue decimal.Decimal `json:"outflow_value"`
	ClosingValue decimal.Decimal `json:"closing_value"`
}

// ReportLineDTO línea del reporte mensual por producto.
type ReportLineDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
	MonthlyValuationDTO
}

// MonthlyReportDTO reporte mensual de existencias (formato SUNAT) con su total.
type MonthlyReportDTO struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Lines        []ReportLineDTO `json:"products"`
	TotalClosing decimal.Decimal `json:"total_closing_value"`
}

// CloseMonthRequest body para POST /api/reports/monthly/close.
type CloseMonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// CloseMonthResponse resultado del cierre mensual.
type CloseMonthResponse struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	SnapshotsSaved int             `json:"snapshots_saved"`
	TotalClosing   decimal.Decimal `json:"total_closing_value"`
}

// FileDTO archivo generado para descarga.
type FileDTO struct {
	Filename    string
	ContentType string
	Content     []byte
}
