package memory

import (
	"context"
	"errors"
	"strings"

	"barangay-pet-registry/internal/domain/setup"
)

type setupRepo struct {
	s *Store
}

func NewSetupRepo(s *Store) setup.Repository {
	return &setupRepo{s: s}
}

func (r *setupRepo) CreateSession(ctx context.Context, sess setup.VerificationSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}
	r.s.setupSessions[sess.ID] = sess
	return nil
}

func (r *setupRepo) FindSessionByCodes(ctx context.Context, publicCode, secretCode string) (setup.VerificationSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sess := range r.s.setupSessions {
		if sess.PublicCode == publicCode && sess.SecretCode == secretCode {
			return sess, nil
		}
	}
	return setup.VerificationSession{}, ErrNotFound
}

func (r *setupRepo) MarkSessionVerified(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.setupSessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Verified = true
	r.s.setupSessions[id] = sess
	return nil
}

func (r *setupRepo) CreateAdminToken(ctx context.Context, t setup.AdminToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("token id required")
	}
	r.s.adminTokens[t.ID] = t
	return nil
}

func (r *setupRepo) FindAdminToken(ctx context.Context, token string) (setup.AdminToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.adminTokens {
		if t.Token == token {
			return t, nil
		}
	}
	return setup.AdminToken{}, ErrNotFound
}

func (r *setupRepo) MarkAdminTokenUsed(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.adminTokens[id]
	if !ok {
		return ErrNotFound
	}
	t.Used = true
	r.s.adminTokens[id] = t
	return nil
}
