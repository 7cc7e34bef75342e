package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"barangay-pet-registry/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func NewUserRepo(s *Store) users.Repository {
	return &userRepo{s: s}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.s.users[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[u.ID]; !exists {
		return ErrNotFound
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, barangayID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, barangayID, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok || u.BarangayID != barangayID {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *userRepo) ListByBarangay(ctx context.Context, barangayID string) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.s.users {
		if u.BarangayID == barangayID {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})

	return out, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}

func (r *userRepo) RecordSignIn(ctx context.Context, barangayID, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	u.LastSignInAt = &at
	r.s.users[id] = u
	return nil
}

func (r *userRepo) RecordSignOut(ctx context.Context, barangayID, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	u.LastSignOutAt = &at
	r.s.users[id] = u
	return nil
}
