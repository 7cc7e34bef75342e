package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"barangay-pet-registry/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
)

const DefaultTTL = 12 * time.Hour

type entry struct {
	claims    auth.Claims
	expiresAt time.Time
}

// Store guarda sesiones en memoria (token -> claims con TTL).
// Implementa auth.SessionVerifier y auth.SessionIssuer.
type Store struct {
	mu      sync.RWMutex
	byToken map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		byToken: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Issue(ctx context.Context, claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.BarangayID) == "" {
		return "", errors.New("claims require barangay id")
	}

	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = entry{
		claims:    claims,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

func (s *Store) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	s.mu.RLock()
	e, ok := s.byToken[token]
	s.mu.RUnlock()

	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}
	if s.now().After(e.expiresAt) {
		// expirada: limpiar lazy
		s.mu.Lock()
		delete(s.byToken, token)
		s.mu.Unlock()
		return auth.Claims{}, ErrInvalidToken
	}
	return e.claims, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, strings.TrimSpace(token))
	return nil
}
