package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/announcements"
)

type announcementRepo struct {
	s *Store
}

func NewAnnouncementRepo(s *Store) announcements.Repository {
	return &announcementRepo{s: s}
}

func (r *announcementRepo) Create(ctx context.Context, a announcements.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("announcement id required")
	}
	if _, exists := r.s.announcements[a.ID]; exists {
		return errors.New("announcement already exists")
	}
	r.s.announcements[a.ID] = a
	return nil
}

// ListByBarangay resuelve el autor contra la tabla de usuarios bajo el
// mismo lock, como el LEFT JOIN del adapter de Postgres.
func (r *announcementRepo) ListByBarangay(ctx context.Context, barangayID string) ([]announcements.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]announcements.Announcement, 0)
	for _, a := range r.s.announcements {
		if a.BarangayID != barangayID {
			continue
		}
		if u, ok := r.s.users[a.AuthorID]; ok {
			a.AuthorName = u.FullName
			a.AuthorRole = string(u.Role)
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DatePosted.After(out[j].DatePosted)
	})

	return out, nil
}

func (r *announcementRepo) GetByID(ctx context.Context, barangayID, id string) (announcements.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.announcements[id]
	if !ok || a.BarangayID != barangayID {
		return announcements.Announcement{}, ErrNotFound
	}
	return a, nil
}

func (r *announcementRepo) Delete(ctx context.Context, barangayID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.announcements[id]
	if !ok || a.BarangayID != barangayID {
		return ErrNotFound
	}
	delete(r.s.announcements, id)
	return nil
}

func (r *announcementRepo) IncrementLikes(ctx context.Context, barangayID, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.announcements[id]
	if !ok || a.BarangayID != barangayID {
		return 0, ErrNotFound
	}
	a.Likes++
	r.s.announcements[id] = a
	return a.Likes, nil
}
