package dto

import "time"

// RegisterLotRequest body para POST /api/lots. ExpiryDate en formato YYYY-MM-DD.
type RegisterLotRequest struct {
	ProductID  string `json:"product_id"`
	LotNumber  string `json:"lot_number"`
	ExpiryDate string `json:"expiry_date"`
	Quantity   int64  `json:"quantity"`
}

// LotResponse lote registrado.
type LotResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LotNumber  string    `json:"lot_number"`
	ExpiryDate string    `json:"expiry_date"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiringLotDTO lote próximo a vencer (o vencido) con los días restantes enteros.
type ExpiringLotDTO struct {
	LotID         string `json:"lot_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	LotNumber     string `json:"lot_number"`
	ExpiryDate    string `json:"expiry_date"`
	Quantity      int64  `json:"quantity"`
	DaysRemaining int    `json:"days_remaining"` // negativo si ya venció
}
