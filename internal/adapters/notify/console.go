package notify

import (
	"context"

	"barangay-pet-registry/internal/platform/logger"
)

// ConsoleNotifier entrega los secretos de setup por el log del proceso.
// Modelo: un operador en una terminal confiable lee el código y lo pasa
// por canal físico a quien completa el setup. Reemplazable por SMS/email.
type ConsoleNotifier struct {
	log logger.Logger
}

func NewConsole(log logger.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (n *ConsoleNotifier) DeliverSecretCode(ctx context.Context, publicCode, secretCode string) error {
	n.log.Info("SECURE LOG: setup secret code generated", map[string]any{
		"public_code": publicCode,
		"secret_code": secretCode,
	})
	return nil
}

func (n *ConsoleNotifier) DeliverAdminToken(ctx context.Context, token string) error {
	n.log.Info("SECURE LOG: admin auth token generated", map[string]any{
		"token": token,
	})
	return nil
}
