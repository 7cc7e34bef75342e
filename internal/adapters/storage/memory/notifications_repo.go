package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/notifications"
)

type notificationRepo struct {
	s *Store
}

func NewNotificationRepo(s *Store) notifications.Repository {
	return &notificationRepo{s: s}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errors.New("notification id required")
	}
	r.s.notifications[n.ID] = n
	return nil
}

func (r *notificationRepo) ListLatest(ctx context.Context, barangayID string, limit int) ([]notifications.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.s.notifications {
		if n.BarangayID == barangayID {
			out = append(out, n)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, barangayID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.BarangayID != barangayID {
		return ErrNotFound
	}
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, barangayID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, n := range r.s.notifications {
		if n.BarangayID == barangayID && !n.IsRead {
			n.IsRead = true
			r.s.notifications[id] = n
		}
	}
	return nil
}
