package notification

import "context"

// Notifier envía un mensaje de texto a un número (código de país sin "+").
// Si el canal está deshabilitado devuelve domain.ErrNotifierDisabled.
type Notifier interface {
	Send(ctx context.Context, to, message string) error
}
