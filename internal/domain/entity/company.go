package entity

// Company datos del emisor impresos en facturas y reportes.
type Company struct {
	Name    string
	RUC     string // 11 dígitos
	Address string
	Phone   string
}
