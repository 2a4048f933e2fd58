package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // entrada | salida | ajuste_positivo | ajuste_negativo
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Document  string          `json:"document,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Document      string          `json:"document,omitempty"`
	StockAfter    int64           `json:"stock_after"`
}

// CurrentStockDTO stock recalculado desde el historial de movimientos frente al contador guardado.
type CurrentStockDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	StoredStock   int64  `json:"stored_stock"`
	MinStock      int64  `json:"min_stock"`
	ComputedStock int64  `json:"computed_stock"`
	Consistent    bool   `json:"consistent"`
}

// ReorderSuggestionDTO producto bajo el mínimo con la cantidad sugerida de pedido.
type ReorderSuggestionDTO struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	SuggestedQty int64           `json:"suggested_qty"` // MinStock - Stock
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier"`
	DeliveryDays int             `json:"delivery_days"`
}

// SendOrderRequest body para POST /api/reorders/send.
type SendOrderRequest struct {
	Phone string `json:"phone"`
}

// SendOrderResponse pedido enviado al proveedor.
type SendOrderResponse struct {
	Phone   string          `json:"phone"`
	Items   int             `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Message string          `json:"message"`
}
