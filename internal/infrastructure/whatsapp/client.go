// Package whatsapp envía mensajes de texto por WhatsApp Cloud API.
package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dentalperu/inventario-dental/internal/application/notification"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/logger"
)

var (
	_ notification.Notifier = (*Client)(nil)
	_ notification.Notifier = (*DisabledNotifier)(nil)
)

// NewNotifier devuelve el cliente de Cloud API si WhatsApp está habilitado; si no, uno que solo registra.
func NewNotifier(cfg config.WhatsAppConfig, log *logger.Logger) notification.Notifier {
	if !cfg.Enabled {
		return NewDisabledNotifier(log)
	}
	return NewClient(cfg, log)
}

// Client implementación sobre resty de notification.Notifier.
type Client struct {
	http          *resty.Client
	phoneNumberID string
	log           *logger.Logger
}

// NewClient construye el cliente con la URL base, versión de API y token de la configuración.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rc := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", "Bearer "+cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: rc, phoneNumberID: cfg.PhoneNumberID, log: log}
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// Send envía message al número to (se quitan "+" y espacios).
func (c *Client) Send(ctx context.Context, to, message string) error {
	to = NormalizePhone(to)
	if to == "" {
		return fmt.Errorf("whatsapp: %w: número vacío", domain.ErrInvalidInput)
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body":        message,
			"preview_url": false,
		},
	}

	result := new(sendResponse)
	apiErr := new(apiError)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(c.phoneNumberID + "/messages")
	if err != nil {
		c.log.Error().Err(err).Str("to", to).Msg("whatsapp: envío fallido")
		return fmt.Errorf("whatsapp: enviar mensaje: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		c.log.Error().Int("code", code).Str("to", to).Str("trace", apiErr.Error.FBTraceID).
			Msg("whatsapp: error de API")
		return fmt.Errorf("whatsapp: error de API: code=%d, message=%s", code, apiErr.Error.Message)
	}

	msgID := ""
	if len(result.Messages) > 0 {
		msgID = result.Messages[0].ID
	}
	c.log.Info().Str("to", to).Str("message_id", msgID).Msg("whatsapp: mensaje enviado")
	return nil
}

// NormalizePhone deja solo dígitos: "+51 999 888 777" -> "51999888777".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisabledNotifier registra el mensaje que se habría enviado y devuelve domain.ErrNotifierDisabled.
type DisabledNotifier struct {
	log *logger.Logger
}

// NewDisabledNotifier construye el notificador deshabilitado.
func NewDisabledNotifier(log *logger.Logger) *DisabledNotifier {
	return &DisabledNotifier{log: log}
}

func (n *DisabledNotifier) Send(_ context.Context, to, message string) error {
	n.log.Info().Str("to", NormalizePhone(to)).Str("message", message).Msg("whatsapp deshabilitado: mensaje no enviado")
	return domain.ErrNotifierDisabled
}
