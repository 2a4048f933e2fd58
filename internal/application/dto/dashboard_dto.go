package dto

import "github.com/shopspring/decimal"

// DashboardDTO métricas del tablero principal.
type DashboardDTO struct {
	LowStockCount     int                `json:"low_stock_count"`
	InventoryValue    decimal.Decimal    `json:"inventory_value"`
	ExpiringLotsCount int                `json:"expiring_lots_count"`
	ExpiryWindowDays  int                `json:"expiry_window_days"`
	MonthlyMovements  []MovementTotalDTO `json:"monthly_movements"`
	DateLabel         string             `json:"date_label"` // ej. "Marzo 2024"
}

// MovementTotalDTO total de un tipo de movimiento en un mes (YYYY-MM).
type MovementTotalDTO struct {
	Month    string          `json:"month"`
	Type     string          `json:"type"`
	Quantity int64           `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}
