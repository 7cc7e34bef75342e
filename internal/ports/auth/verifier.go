package auth

import "context"

// SessionVerifier resuelve un token de sesión a claims o error.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// SessionIssuer emite y revoca tokens de sesión.
type SessionIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
	Revoke(ctx context.Context, token string) error
}
