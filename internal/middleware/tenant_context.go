package middleware

import (
	"context"
	"net/http"
	"strings"

	"barangay-pet-registry/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TenantContext resuelve la sesión y deja los claims en el context.
//   - verifier != nil y viene Bearer token => Verify() y setea claims.
//   - verifier == nil => modo dev: X-Debug-Barangay-ID (+ X-Debug-User-ID,
//     X-Debug-Role) inyectan claims sin sesión real.
//   - Sin claims, el request sigue igual; los handlers deciden 401/403.
func TenantContext(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if bgy := strings.TrimSpace(r.Header.Get("X-Debug-Barangay-ID")); bgy != "" {
					role := auth.Role(strings.TrimSpace(r.Header.Get("X-Debug-Role")))
					if role == "" {
						role = auth.RoleStaff
					}
					claims := auth.Claims{
						UserID:     strings.TrimSpace(r.Header.Get("X-Debug-User-ID")),
						BarangayID: bgy,
						Role:       role,
					}
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// no cortamos acá; el handler decide 401/403
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// BarangayID es el resolver de tenant: claims presentes => su barangay,
// si no, vacío. Los read paths tratan vacío como "sin acceso" (lista
// vacía), los write paths fallan antes de tocar el store.
func BarangayID(ctx context.Context) string {
	c, ok := GetClaims(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.BarangayID)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
