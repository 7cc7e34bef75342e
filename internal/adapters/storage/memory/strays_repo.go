package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/strays"
)

type strayRepo struct {
	s *Store
}

func NewStrayRepo(s *Store) strays.Repository {
	return &strayRepo{s: s}
}

func (r *strayRepo) Create(ctx context.Context, rep strays.StrayReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(rep.ID) == "" {
		return errors.New("stray report id required")
	}
	if _, exists := r.s.strays[rep.ID]; exists {
		return errors.New("stray report already exists")
	}
	r.s.strays[rep.ID] = rep
	return nil
}

func (r *strayRepo) GetByID(ctx context.Context, barangayID, id string) (strays.StrayReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rep, ok := r.s.strays[id]
	if !ok || rep.BarangayID != barangayID {
		return strays.StrayReport{}, ErrNotFound
	}
	return rep, nil
}

func (r *strayRepo) ListByBarangay(ctx context.Context, barangayID string) ([]strays.StrayReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]strays.StrayReport, 0)
	for _, rep := range r.s.strays {
		if rep.BarangayID == barangayID {
			out = append(out, rep)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateReported.After(out[j].DateReported)
	})

	return out, nil
}

func (r *strayRepo) UpdateStatus(ctx context.Context, barangayID, id string, status strays.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rep, ok := r.s.strays[id]
	if !ok || rep.BarangayID != barangayID {
		return ErrNotFound
	}
	rep.Status = status
	r.s.strays[id] = rep
	return nil
}
