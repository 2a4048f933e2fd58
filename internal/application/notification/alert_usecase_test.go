package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/notification"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
)

type sent struct{ to, msg string }

type fakeNotifier struct {
	out []sent
	err error
}

func (f *fakeNotifier) Send(_ context.Context, to, msg string) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, sent{to, msg})
	return nil
}

var orderItems = []dto.ReorderSuggestionDTO{
	{Name: "Resina Flow", SuggestedQty: 7, UnitPrice: decimal.RequireFromString("85.5")},
	{Name: "Guantes de Nitrilo", SuggestedQty: 22, UnitPrice: decimal.RequireFromString("1.20")},
}

func TestFormatOrderMessage(t *testing.T) {
	msg, total := notification.FormatOrderMessage(time.Date(2024, 3, 5, 9, 7, 0, 0, time.Local), orderItems)

	want := "📦 *Pedido Dental*\n" +
		"📅 Fecha: 05/03/2024 09:07\n" +
		"--------------------------------\n" +
		"▪ Resina Flow x7 - S/85.50\n" +
		"▪ Guantes de Nitrilo x22 - S/1.20\n" +
		"--------------------------------\n" +
		"💰 Total: S/624.90\n" +
		"\n" +
		"Por favor confirmar disponibilidad. Gracias!"
	assert.Equal(t, want, msg)
	assert.True(t, total.Equal(decimal.RequireFromString("624.90")))
}

func TestSendSupplierOrder(t *testing.T) {
	n := &fakeNotifier{}
	uc := notification.NewAlertUseCase(n, "51987654321").
		WithClock(func() time.Time { return time.Date(2024, 3, 5, 9, 7, 0, 0, time.Local) })

	got, err := uc.SendSupplierOrder(context.Background(), " 51911222333 ", orderItems)
	require.NoError(t, err)
	require.Len(t, n.out, 1)
	assert.Equal(t, "51911222333", n.out[0].to)
	assert.Equal(t, got.Message, n.out[0].msg)
	assert.Equal(t, 2, got.Items)
}

func TestSendSupplierOrder_Validaciones(t *testing.T) {
	uc := notification.NewAlertUseCase(&fakeNotifier{}, "")

	_, err := uc.SendSupplierOrder(context.Background(), "", orderItems)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.SendSupplierOrder(context.Background(), "51911222333", nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSendSupplierOrder_CanalDeshabilitado(t *testing.T) {
	uc := notification.NewAlertUseCase(&fakeNotifier{err: domain.ErrNotifierDisabled}, "")

	_, err := uc.SendSupplierOrder(context.Background(), "51911222333", orderItems)
	assert.ErrorIs(t, err, domain.ErrNotifierDisabled)
}

func TestLowStockAlert(t *testing.T) {
	n := &fakeNotifier{}
	uc := notification.NewAlertUseCase(n, "51987654321")

	require.NoError(t, uc.LowStockAlert(context.Background(), &entity.Product{Name: "Resina Flow", Stock: 4, MinStock: 10}))
	require.Len(t, n.out, 1)
	assert.Equal(t, "⚠️ ALERTA: Stock de Resina Flow bajo mínimo (4 unidades)", n.out[0].msg)
}

func TestAlertas_SinNumeroAdministradorNoEnvian(t *testing.T) {
	n := &fakeNotifier{err: errors.New("no debería llamarse")}
	uc := notification.NewAlertUseCase(n, "")

	assert.NoError(t, uc.LowStockAlert(context.Background(), &entity.Product{Name: "X"}))
	assert.NoError(t, uc.ExpiryDigest(context.Background(), []dto.ExpiringLotDTO{{LotNumber: "L1"}}))
	assert.NoError(t, uc.LowStockDigest(context.Background(), orderItems))
}

func TestExpiryDigest(t *testing.T) {
	n := &fakeNotifier{}
	uc := notification.NewAlertUseCase(n, "51987654321")

	require.NoError(t, uc.ExpiryDigest(context.Background(), nil))
	assert.Empty(t, n.out, "sin lotes no se envía mensaje")

	require.NoError(t, uc.ExpiryDigest(context.Background(), []dto.ExpiringLotDTO{
		{ProductName: "Anestesia Lidocaína 2%", LotNumber: "L-1007", ExpiryDate: "2024-07-10", DaysRemaining: 30},
	}))
	require.Len(t, n.out, 1)
	assert.Contains(t, n.out[0].msg, "▪ Anestesia Lidocaína 2% - lote L-1007 vence 2024-07-10 (30 días)")
}
