// Package notification arma los mensajes de alerta y pedidos y los entrega por un Notifier.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

const (
	opSendOrder = "enviar pedido"
	separator   = "--------------------------------"
)

// AlertUseCase alertas al administrador y pedidos a proveedores.
type AlertUseCase struct {
	notifier   Notifier
	adminPhone string
	now        func() time.Time
}

// NewAlertUseCase construye el caso de uso. Sin adminPhone las alertas se omiten.
func NewAlertUseCase(notifier Notifier, adminPhone string) *AlertUseCase {
	return &AlertUseCase{notifier: notifier, adminPhone: adminPhone, now: time.Now}
}

// LowStockAlert avisa que un producto quedó bajo su stock mínimo.
func (uc *AlertUseCase) LowStockAlert(ctx context.Context, p *entity.Product) error {
	if uc.adminPhone == "" {
		return nil
	}
	msg := fmt.Sprintf("⚠️ ALERTA: Stock de %s bajo mínimo (%d unidades)", p.Name, p.Stock)
	return uc.notifier.Send(ctx, uc.adminPhone, msg)
}

// LowStockDigest envía el resumen diario de productos bajo mínimo. Lista vacía: no envía nada.
func (uc *AlertUseCase) LowStockDigest(ctx context.Context, items []dto.ReorderSuggestionDTO) error {
	if uc.adminPhone == "" || len(items) == 0 {
		return nil
	}
	lines := []string{"⚠️ *Productos bajo mínimo*", separator}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("▪ %s: %d/%d (pedir %d)", it.Name, it.Stock, it.MinStock, it.SuggestedQty))
	}
	return uc.notifier.Send(ctx, uc.adminPhone, strings.Join(lines, "\n"))
}

// ExpiryDigest envía el resumen de lotes por vencer. Lista vacía: no envía nada.
func (uc *AlertUseCase) ExpiryDigest(ctx context.Context, lots []dto.ExpiringLotDTO) error {
	if uc.adminPhone == "" || len(lots) == 0 {
		return nil
	}
	lines := []string{"⏳ *Lotes por vencer*", separator}
	for _, l := range lots {
		lines = append(lines, fmt.Sprintf("▪ %s - lote %s vence %s (%d días)",
			l.ProductName, l.LotNumber, l.ExpiryDate, l.DaysRemaining))
	}
	return uc.notifier.Send(ctx, uc.adminPhone, strings.Join(lines, "\n"))
}

// SendSupplierOrder arma el pedido con las cantidades sugeridas y lo envía al proveedor.
func (uc *AlertUseCase) SendSupplierOrder(ctx context.Context, phone string, items []dto.ReorderSuggestionDTO) (*dto.SendOrderResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.Validation(opSendOrder, "phone requerido")
	}
	if len(items) == 0 {
		return nil, domain.Validation(opSendOrder, "no hay productos para pedir")
	}

	msg, total := FormatOrderMessage(uc.now(), items)
	if err := uc.notifier.Send(ctx, phone, msg); err != nil {
		return nil, fmt.Errorf("%s: %w", opSendOrder, err)
	}
	return &dto.SendOrderResponse{
		Phone:   phone,
		Items:   len(items),
		Total:   total,
		Message: msg,
	}, nil
}

// FormatOrderMessage devuelve el texto del pedido y su total (Σ cantidad × precio).
func FormatOrderMessage(at time.Time, items []dto.ReorderSuggestionDTO) (string, decimal.Decimal) {
	lines := []string{
		"📦 *Pedido Dental*",
		"📅 Fecha: " + at.Format("02/01/2006 15:04"),
		separator,
	}
	total := decimal.Zero
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("▪ %s x%d - S/%s", it.Name, it.SuggestedQty, it.UnitPrice.StringFixed(2)))
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.SuggestedQty)))
	}
	lines = append(lines,
		separator,
		"💰 Total: S/"+total.StringFixed(2),
		"",
		"Por favor confirmar disponibilidad. Gracias!",
	)
	return strings.Join(lines, "\n"), total
}
