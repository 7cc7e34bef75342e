package setup

import "context"

// Repository persiste los registros efímeros del flujo: no llevan
// barangay_id porque el tenant todavía no existe.
type Repository interface {
	CreateSession(ctx context.Context, s VerificationSession) error

	// FindSessionByCodes exige la pareja exacta generada junta en
	// el paso 1.
	FindSessionByCodes(ctx context.Context, publicCode, secretCode string) (VerificationSession, error)

	MarkSessionVerified(ctx context.Context, id string) error

	CreateAdminToken(ctx context.Context, t AdminToken) error
	FindAdminToken(ctx context.Context, token string) (AdminToken, error)
	MarkAdminTokenUsed(ctx context.Context, id string) error
}
