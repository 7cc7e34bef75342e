package notify

import "context"

// OutOfBand entrega secretos de provisioning a un humano por un canal
// lateral (consola de operador, SMS, email). El response HTTP nunca
// incluye estos valores.
type OutOfBand interface {
	DeliverSecretCode(ctx context.Context, publicCode, secretCode string) error
	DeliverAdminToken(ctx context.Context, token string) error
}
